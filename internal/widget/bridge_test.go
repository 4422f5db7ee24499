package widget

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/lifecycle"
	"github.com/tsdcosta/refuge-player/internal/source"
)

const (
	soundcloudURL = "https://soundcloud.com/refugeworldwide/show-1"
	mixcloudURL   = "https://www.mixcloud.com/RefugeWorldwide/show-1/"
)

type fakeSurface struct {
	mu      sync.Mutex
	emit    func(Event)
	loads   []string
	evals   []string
	alive   bool
	closed  bool
	evalErr error
}

func (s *fakeSurface) Load(html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads = append(s.loads, html)
	return nil
}

func (s *fakeSurface) Eval(js string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals = append(s.evals, js)
	return "", s.evalErr
}

func (s *fakeSurface) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

func (s *fakeSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSurface) setAlive(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alive = v
}

func (s *fakeSurface) evalCount(substr string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, js := range s.evals {
		if strings.Contains(js, substr) {
			n++
		}
	}
	return n
}

type fakeHost struct {
	mu         sync.Mutex
	surfaces   []*fakeSurface
	factoryErr error
}

func (h *fakeHost) factory(emit func(Event)) (Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.factoryErr != nil {
		return nil, h.factoryErr
	}
	s := &fakeSurface{emit: emit, alive: true}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}

func (h *fakeHost) surface(i int) *fakeSurface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surfaces[i]
}

func newTestBridge(grace time.Duration) (*Bridge, *fakeHost, *lifecycle.Notifier) {
	h := &fakeHost{}
	phases := lifecycle.NewNotifier()
	b := NewBridge(h.factory, phases, grace, zerolog.Nop(), nil)
	return b, h, phases
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func playAndLoad(t *testing.T, b *Bridge, h *fakeHost, url string) *fakeSurface {
	t.Helper()
	b.Play(url)
	waitFor(t, "surface load", func() bool {
		return h.count() >= 1 && len(h.surface(h.count()-1).loads) > 0
	})
	return h.surface(h.count() - 1)
}

func TestBridge_PlayLoadsPlatformDocument(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, soundcloudURL)
	if !strings.Contains(s.loads[0], "w.soundcloud.com/player") {
		t.Error("expected soundcloud widget document")
	}

	if got := b.Status(); got.State != StateLoading || got.Platform != source.KindSoundcloud {
		t.Errorf("unexpected status %+v", got)
	}

	s.emit(Event{Name: EventPlay})
	if got := b.Status(); got.State != StatePlaying {
		t.Errorf("expected playing after widget play event, got %v", got.State)
	}
}

func TestBridge_PlayDiscardsPreviousWidget(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	first := playAndLoad(t, b, h, soundcloudURL)
	first.emit(Event{Name: EventPlay})

	b.Play(mixcloudURL)
	waitFor(t, "second surface", func() bool { return h.count() == 2 && len(h.surface(1).loads) > 0 })

	if !first.closed {
		t.Error("previous surface must be discarded")
	}
	if !strings.Contains(h.surface(1).loads[0], "mixcloud.com/widget") {
		t.Error("expected mixcloud widget document")
	}

	// Events from the discarded widget are dropped.
	first.emit(Event{Name: EventError})
	if got := b.Status(); got.State == StateFailed {
		t.Error("stale widget event must not affect state")
	}
}

func TestBridge_SoundcloudUnitsNormalizedToSeconds(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, soundcloudURL)
	s.emit(Event{Name: EventDuration, Duration: 180000})
	s.emit(Event{Name: EventProgress, Position: 30000})

	got := b.Status()
	if got.Duration != 180 {
		t.Errorf("expected duration 180s, got %v", got.Duration)
	}
	if got.Position != 30 {
		t.Errorf("expected position 30s, got %v", got.Position)
	}
}

func TestBridge_MixcloudUnitsAlreadySeconds(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, mixcloudURL)
	s.emit(Event{Name: EventProgress, Position: 30, Duration: 180})

	got := b.Status()
	if got.Position != 30 || got.Duration != 180 {
		t.Errorf("expected 30/180, got %v/%v", got.Position, got.Duration)
	}
}

func TestBridge_ErrorIsTerminal(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, soundcloudURL)
	s.emit(Event{Name: EventPlay})
	s.emit(Event{Name: EventError, Data: "load failed"})

	got := b.Status()
	if got.State != StateFailed || got.IsPlaying() {
		t.Errorf("expected failed, got %+v", got)
	}

	time.Sleep(30 * time.Millisecond)
	if h.count() != 1 {
		t.Error("widget errors must not trigger recreation")
	}
}

func TestBridge_FinishTransitionsToIdle(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, soundcloudURL)
	s.emit(Event{Name: EventPlay})
	s.emit(Event{Name: EventFinish})

	if got := b.Status(); got.State != StateIdle || got.IsPlaying() {
		t.Errorf("expected idle after finish, got %+v", got)
	}
}

func TestBridge_DeferredResumeExecutesExactlyOnce(t *testing.T) {
	b, h, phases := newTestBridge(time.Hour)
	phases.Subscribe(b.OnLifecycle)

	s := playAndLoad(t, b, h, soundcloudURL)
	s.emit(Event{Name: EventPlay})

	phases.Publish(lifecycle.Event{Kind: lifecycle.EnterBackground})

	// Multiple resumes while backgrounded must not reach the widget.
	b.Resume()
	b.Resume()
	b.Resume()
	time.Sleep(20 * time.Millisecond)
	if n := s.evalCount("__widgetPlay"); n != 0 {
		t.Fatalf("expected no widget calls while backgrounded, got %d", n)
	}

	phases.Publish(lifecycle.Event{Kind: lifecycle.BecomeActive})
	waitFor(t, "deferred resume", func() bool { return s.evalCount("__widgetPlay") == 1 })

	time.Sleep(50 * time.Millisecond)
	if n := s.evalCount("__widgetPlay"); n != 1 {
		t.Errorf("deferred resume must fire exactly once, got %d calls", n)
	}

	// The next foreground transition has nothing pending.
	phases.Publish(lifecycle.Event{Kind: lifecycle.EnterBackground})
	phases.Publish(lifecycle.Event{Kind: lifecycle.BecomeActive})
	time.Sleep(50 * time.Millisecond)
	if n := s.evalCount("__widgetPlay"); n != 1 {
		t.Errorf("stale pending resume fired again: %d calls", n)
	}
}

func TestBridge_RecreatesUnreachableWidgetAndReseeks(t *testing.T) {
	b, h, phases := newTestBridge(20 * time.Millisecond)
	phases.Subscribe(b.OnLifecycle)

	s := playAndLoad(t, b, h, soundcloudURL)
	s.emit(Event{Name: EventPlay})
	s.emit(Event{Name: EventDuration, Duration: 180000})
	s.emit(Event{Name: EventProgress, Position: 30000})

	phases.Publish(lifecycle.Event{Kind: lifecycle.EnterBackground})
	b.Resume()

	// The suspension killed the script runtime.
	s.setAlive(false)

	phases.Publish(lifecycle.Event{Kind: lifecycle.BecomeActive})
	waitFor(t, "recreated surface", func() bool { return h.count() == 2 && len(h.surface(1).loads) > 0 })

	if !s.closed {
		t.Error("unreachable surface must be closed")
	}

	// After the grace delay the new widget is reseeked near the last
	// known position (30s = 30000ms for soundcloud) and resumed.
	replacement := h.surface(1)
	waitFor(t, "reseek", func() bool { return replacement.evalCount("__widgetSeek(30000)") == 1 })
	waitFor(t, "resume call", func() bool { return replacement.evalCount("__widgetPlay") == 1 })
}

func TestBridge_ResumeWithoutURLIsNoop(t *testing.T) {
	b, h, phases := newTestBridge(time.Hour)
	phases.Subscribe(b.OnLifecycle)

	phases.Publish(lifecycle.Event{Kind: lifecycle.EnterBackground})
	b.Resume()
	phases.Publish(lifecycle.Event{Kind: lifecycle.BecomeActive})

	time.Sleep(30 * time.Millisecond)
	if h.count() != 0 {
		t.Error("resume with no session must not create a surface")
	}
}

func TestBridge_SeekClampsAndRequiresDuration(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, mixcloudURL)

	// Duration unknown: no-op.
	b.SeekTo(30)
	if n := s.evalCount("__widgetSeek"); n != 0 {
		t.Errorf("seek before duration known must be a no-op, got %d calls", n)
	}

	s.emit(Event{Name: EventDuration, Duration: 180})
	b.SeekTo(500)
	if n := s.evalCount("__widgetSeek(180)"); n != 1 {
		t.Errorf("expected seek clamped to 180, evals: %v", s.evals)
	}
	if got := b.Status(); got.Position != 180 {
		t.Errorf("expected position updated to 180, got %v", got.Position)
	}
}

func TestBridge_StopClearsSession(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	s := playAndLoad(t, b, h, soundcloudURL)
	s.emit(Event{Name: EventPlay})
	s.emit(Event{Name: EventProgress, Position: 30000, Duration: 180000})

	b.Stop()

	got := b.Status()
	if got.State != StateIdle || got.URL != "" || got.Position != 0 || got.Duration != 0 {
		t.Errorf("expected cleared session, got %+v", got)
	}
	if !s.closed {
		t.Error("stop must close the surface")
	}
}

func TestBridge_SurfaceFailurePublishesFailed(t *testing.T) {
	h := &fakeHost{factoryErr: errors.New("browser gone")}
	b := NewBridge(h.factory, lifecycle.NewNotifier(), time.Hour, zerolog.Nop(), nil)

	var mu sync.Mutex
	var states []State
	b.Subscribe(func(st Status) {
		mu.Lock()
		states = append(states, st.State)
		mu.Unlock()
	})

	b.Play(soundcloudURL)
	waitFor(t, "failed status", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) > 0 && states[len(states)-1] == StateFailed
	})
}

func TestBridge_NonEmbeddableURLIgnored(t *testing.T) {
	b, h, _ := newTestBridge(time.Hour)

	b.Play("https://archive.example.org/a.mp3")
	time.Sleep(20 * time.Millisecond)
	if h.count() != 0 {
		t.Error("non-embeddable url must not create a surface")
	}
	if got := b.Status(); got.State != StateIdle {
		t.Errorf("expected idle, got %v", got.State)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIdle, "idle"},
		{StateLoading, "loading"},
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{StateFailed, "failed"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("State.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

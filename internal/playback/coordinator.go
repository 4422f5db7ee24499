// Package playback coordinates the native stream engine and the embedded
// widget bridge behind a single facade. At most one backend is active at a
// time; activating one always stops the other first.
package playback

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/platform/metrics"
	"github.com/tsdcosta/refuge-player/internal/source"
	"github.com/tsdcosta/refuge-player/internal/stream"
	"github.com/tsdcosta/refuge-player/internal/widget"
)

// Backend identifies which playback backend currently owns audio.
type Backend int

const (
	// BackendNone means nothing is active.
	BackendNone Backend = iota
	// BackendNative is the native stream engine (live and direct files).
	BackendNative
	// BackendWidget is the embedded widget bridge.
	BackendWidget
)

// String returns a human-readable label for the backend.
func (b Backend) String() string {
	switch b {
	case BackendNone:
		return "none"
	case BackendNative:
		return "native"
	case BackendWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// State is the unified playback state across both backends.
type State int

const (
	// StateIdle means no playback session exists.
	StateIdle State = iota
	// StateLoading means a session is starting up.
	StateLoading
	// StatePlaying means audio is flowing.
	StatePlaying
	// StatePaused means an embedded session is paused and resumable.
	StatePaused
	// StateBuffering means a native session stalled and is recovering.
	StateBuffering
	// StateStopped means the session ended or was stopped.
	StateStopped
	// StateFailed means the session failed terminally.
	StateFailed
)

// String returns a human-readable label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateBuffering:
		return "buffering"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Metadata is the display metadata the coordinator owns for the current
// session. It is set by the caller, never derived from the stream.
type Metadata struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	ArtworkURL string `json:"artwork_url,omitempty"`
}

// Snapshot is the coordinator's unified view of playback.
type Snapshot struct {
	Backend  Backend  `json:"-"`
	State    State    `json:"-"`
	URL      string   `json:"url,omitempty"`
	Live     bool     `json:"live"`
	Position float64  `json:"position"`
	Duration float64  `json:"duration,omitempty"`
	Metadata Metadata `json:"metadata"`
}

// IsPlaying reports whether audio is flowing or being worked towards.
func (s Snapshot) IsPlaying() bool {
	return s.State == StatePlaying || s.State == StateLoading || s.State == StateBuffering
}

// IsPaused reports whether the session is paused and resumable in place.
func (s Snapshot) IsPaused() bool {
	return s.State == StatePaused
}

// NativeBackend is the coordinator's view of the stream engine.
type NativeBackend interface {
	PlayLive()
	PlayURL(url string)
	Toggle()
	Stop()
	SeekTo(seconds float64)
	Status() stream.Status
	Subscribe(fn func(stream.Status))
}

// WidgetBackend is the coordinator's view of the widget bridge.
type WidgetBackend interface {
	Play(url string)
	Pause()
	Resume()
	Stop()
	SeekTo(seconds float64)
	Status() widget.Status
	Subscribe(fn func(widget.Status))
}

// NowPlayingSink receives the current session snapshot on every change, for
// surfaces like the system now-playing integration.
type NowPlayingSink interface {
	Update(Snapshot)
}

// Coordinator is the single entry point for all playback control.
type Coordinator struct {
	native   NativeBackend
	embedded WidgetBackend
	liveURL  string
	liveMeta Metadata
	log      zerolog.Logger
	metrics  *metrics.Metrics

	mu     sync.Mutex
	active Backend
	meta   Metadata
	snap   Snapshot

	sinks     []NowPlayingSink
	listeners []func(Snapshot)
}

// NewCoordinator wires the two backends. m may be nil. liveURL and liveTitle
// describe the station's live stream used by Play.
func NewCoordinator(native NativeBackend, embedded WidgetBackend, liveURL, liveTitle string, log zerolog.Logger, m *metrics.Metrics) *Coordinator {
	c := &Coordinator{
		native:   native,
		embedded: embedded,
		liveURL:  liveURL,
		liveMeta: Metadata{Title: liveTitle},
		log:      log,
		metrics:  m,
		snap:     Snapshot{},
	}
	native.Subscribe(c.onNativeStatus)
	embedded.Subscribe(c.onWidgetStatus)
	return c
}

// Subscribe registers fn for snapshot changes. Listeners run synchronously
// without the coordinator lock held.
func (c *Coordinator) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// AddSink registers a now-playing sink. Sinks are pushed on every change.
func (c *Coordinator) AddSink(sink NowPlayingSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, sink)
}

// Snapshot returns the current unified playback view.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Play starts the station's live stream on the native backend, stopping any
// embedded session first.
func (c *Coordinator) Play() {
	c.countCommand()
	c.mu.Lock()
	c.active = BackendNative
	c.meta = c.liveMeta
	c.mu.Unlock()
	c.setActiveGauge(BackendNative)

	c.log.Info().Str("url", c.liveURL).Msg("starting live playback")
	c.embedded.Stop()
	c.native.PlayLive()
}

// PlayURL starts on-demand playback of rawURL with the given display
// metadata, routing to the widget bridge for embedded platforms and to the
// native engine for direct files. The other backend is stopped first.
func (c *Coordinator) PlayURL(rawURL string, meta Metadata) {
	c.countCommand()
	src := source.Classify(c.liveURL, rawURL)

	if src.Embedded() {
		c.mu.Lock()
		c.active = BackendWidget
		c.meta = meta
		c.mu.Unlock()
		c.setActiveGauge(BackendWidget)

		c.log.Info().Str("url", rawURL).Str("platform", src.Kind.String()).Msg("starting embedded playback")
		c.native.Stop()
		c.embedded.Play(rawURL)
		return
	}

	c.mu.Lock()
	c.active = BackendNative
	c.meta = meta
	c.mu.Unlock()
	c.setActiveGauge(BackendNative)

	c.log.Info().Str("url", rawURL).Msg("starting native playback")
	c.embedded.Stop()
	if src.Kind == source.KindLive {
		c.native.PlayLive()
	} else {
		c.native.PlayURL(rawURL)
	}
}

// Pause pauses playback. The native engine has no resumable pause, so a
// native pause stops the stream; toggling afterwards restarts it.
func (c *Coordinator) Pause() {
	c.countCommand()
	switch c.activeBackend() {
	case BackendNative:
		c.native.Stop()
	case BackendWidget:
		c.embedded.Pause()
	}
}

// Resume resumes playback on the active backend.
func (c *Coordinator) Resume() {
	c.countCommand()
	switch c.activeBackend() {
	case BackendNative:
		st := c.native.Status()
		if !st.IsPlaying() && !st.IsBuffering() {
			c.native.Toggle()
		}
	case BackendWidget:
		c.embedded.Resume()
	}
}

// Stop stops playback on both backends and clears the session.
func (c *Coordinator) Stop() {
	c.countCommand()
	c.mu.Lock()
	prev := c.snap.State
	c.active = BackendNone
	c.meta = Metadata{}
	c.snap = Snapshot{State: StateStopped}
	snap := c.snap
	c.mu.Unlock()
	c.setActiveGauge(BackendNone)

	// Backend statuses arriving after this are dropped, so the cleared
	// snapshot is published here.
	c.embedded.Stop()
	c.native.Stop()
	c.noteChange(prev, snap)
}

// Toggle flips between playing and paused on the active backend. Toggling a
// failed embedded session stops it instead of retrying the dead widget.
func (c *Coordinator) Toggle() {
	c.countCommand()
	switch c.activeBackend() {
	case BackendNative:
		c.native.Toggle()
	case BackendWidget:
		st := c.embedded.Status()
		switch {
		case st.State == widget.StateFailed:
			c.Stop()
		case st.IsPlaying() || st.IsBuffering():
			c.embedded.Pause()
		default:
			c.embedded.Resume()
		}
	}
}

// SeekTo seeks the active backend to the given position in seconds.
func (c *Coordinator) SeekTo(seconds float64) {
	c.countCommand()
	switch c.activeBackend() {
	case BackendNative:
		c.native.SeekTo(seconds)
	case BackendWidget:
		c.embedded.SeekTo(seconds)
	}
}

// IsPlayingURL reports whether rawURL is the one currently playing.
func (c *Coordinator) IsPlayingURL(rawURL string) bool {
	snap := c.Snapshot()
	return snap.URL == rawURL && snap.IsPlaying()
}

// IsPausedURL reports whether rawURL is the current session and paused.
func (c *Coordinator) IsPausedURL(rawURL string) bool {
	snap := c.Snapshot()
	return snap.URL == rawURL && snap.IsPaused()
}

// UpdateNowPlayingInfo replaces the session's display metadata and pushes
// the change to all sinks.
func (c *Coordinator) UpdateNowPlayingInfo(meta Metadata) {
	c.mu.Lock()
	c.meta = meta
	c.snap.Metadata = meta
	snap := c.snap
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Coordinator) activeBackend() Backend {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// onNativeStatus folds a native engine status into the unified snapshot.
// Statuses from a backend that is no longer active are dropped.
func (c *Coordinator) onNativeStatus(st stream.Status) {
	c.mu.Lock()
	if c.active != BackendNative {
		c.mu.Unlock()
		return
	}
	prev := c.snap.State
	c.snap = Snapshot{
		Backend:  BackendNative,
		State:    nativeState(st.State),
		URL:      st.URL,
		Live:     st.Live,
		Position: st.Position,
		Duration: st.Duration,
		Metadata: c.meta,
	}
	snap := c.snap
	c.mu.Unlock()

	c.noteChange(prev, snap)
}

// onWidgetStatus folds a widget bridge status into the unified snapshot.
func (c *Coordinator) onWidgetStatus(st widget.Status) {
	c.mu.Lock()
	if c.active != BackendWidget {
		c.mu.Unlock()
		return
	}
	prev := c.snap.State
	c.snap = Snapshot{
		Backend:  BackendWidget,
		State:    widgetState(st.State),
		URL:      st.URL,
		Position: st.Position,
		Duration: st.Duration,
		Metadata: c.meta,
	}
	snap := c.snap
	c.mu.Unlock()

	c.noteChange(prev, snap)
}

func (c *Coordinator) noteChange(prev State, snap Snapshot) {
	if snap.State != prev {
		if c.metrics != nil {
			c.metrics.IncStateChanges()
		}
		c.log.Debug().Str("state", snap.State.String()).Str("backend", snap.Backend.String()).Msg("playback state changed")
	}
	c.publish(snap)
}

func (c *Coordinator) publish(snap Snapshot) {
	c.mu.Lock()
	listeners := make([]func(Snapshot), len(c.listeners))
	copy(listeners, c.listeners)
	sinks := make([]NowPlayingSink, len(c.sinks))
	copy(sinks, c.sinks)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	for _, sink := range sinks {
		sink.Update(snap)
	}
}

func (c *Coordinator) countCommand() {
	if c.metrics != nil {
		c.metrics.IncTransportCommands()
	}
}

func (c *Coordinator) setActiveGauge(b Backend) {
	if c.metrics == nil {
		return
	}
	switch b {
	case BackendNative:
		c.metrics.SetActiveBackend(metrics.BackendNative)
	case BackendWidget:
		c.metrics.SetActiveBackend(metrics.BackendWidget)
	default:
		c.metrics.SetActiveBackend(metrics.BackendNone)
	}
}

func nativeState(s stream.State) State {
	switch s {
	case stream.StateLoading:
		return StateLoading
	case stream.StatePlaying:
		return StatePlaying
	case stream.StateBuffering:
		return StateBuffering
	case stream.StateStopped:
		return StateStopped
	case stream.StateFailed:
		return StateFailed
	default:
		return StateIdle
	}
}

func widgetState(s widget.State) State {
	switch s {
	case widget.StateLoading:
		return StateLoading
	case widget.StatePlaying:
		return StatePlaying
	case widget.StatePaused:
		return StatePaused
	case widget.StateFailed:
		return StateFailed
	default:
		return StateIdle
	}
}

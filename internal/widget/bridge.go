package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/lifecycle"
	"github.com/tsdcosta/refuge-player/internal/platform/metrics"
	"github.com/tsdcosta/refuge-player/internal/source"
)

// widgetSession is the bridge's mutable per-show state, guarded by Bridge.mu.
type widgetSession struct {
	url      string
	platform source.Kind
	position float64
	duration float64
	// set on backgrounding: the script runtime may have been suspended,
	// so control calls need validation before they are trusted again
	needsRecreation bool
	// set when a resume arrived while the host was not foreground-active
	pendingResume bool
	instanceID    string
}

// Bridge is the embedded-widget backend. It drives one hidden surface at a
// time and recovers playback after host-app suspension by probing the
// script runtime and recreating the widget when it is unreachable.
type Bridge struct {
	factory    SurfaceFactory
	phases     *lifecycle.Notifier
	graceDelay time.Duration
	log        zerolog.Logger
	metrics    *metrics.Metrics

	mu      sync.Mutex
	surface Surface
	sess    widgetSession
	state   State
	gen     int // invalidates events and timers of discarded widgets

	listeners []func(Status)
}

// NewBridge creates a widget bridge. m may be nil.
func NewBridge(factory SurfaceFactory, phases *lifecycle.Notifier, graceDelay time.Duration, log zerolog.Logger, m *metrics.Metrics) *Bridge {
	return &Bridge{
		factory:    factory,
		phases:     phases,
		graceDelay: graceDelay,
		log:        log,
		metrics:    m,
	}
}

// Subscribe registers fn for status changes. Listeners run synchronously on
// the goroutine that caused the transition, without the bridge lock held.
func (b *Bridge) Subscribe(fn func(Status)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Status returns a snapshot of the bridge state.
func (b *Bridge) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statusLocked()
}

func (b *Bridge) statusLocked() Status {
	return Status{
		State:    b.state,
		URL:      b.sess.url,
		Platform: b.sess.platform,
		Position: b.sess.position,
		Duration: b.sess.duration,
	}
}

// Play discards any existing widget and loads a fresh one for rawURL.
func (b *Bridge) Play(rawURL string) {
	src := source.Classify("", rawURL)
	if !src.Embedded() {
		b.log.Warn().Str("url", rawURL).Msg("url is not embeddable, ignoring")
		return
	}

	b.mu.Lock()
	b.gen++
	gen := b.gen
	old := b.surface
	b.surface = nil
	b.sess = widgetSession{
		url:        rawURL,
		platform:   src.Kind,
		instanceID: uuid.NewString(),
	}
	b.state = StateLoading
	status := b.statusLocked()
	b.mu.Unlock()

	if old != nil {
		old.Close()
	}
	b.log.Info().Str("url", rawURL).Str("platform", src.Kind.String()).Msg("loading widget")
	b.publish(status)

	// Surface creation and document load can block; keep the caller free.
	go b.createWidget(gen, rawURL, src.Kind, 0)
}

// createWidget builds a surface for url and loads the platform document.
// reseekTo > 0 marks a recreation: after the initialization grace delay the
// widget is reseeked to the last known position.
func (b *Bridge) createWidget(gen int, rawURL string, platform source.Kind, reseekTo float64) {
	doc, err := documentFor(platform, rawURL)
	if err != nil {
		b.fail(gen, err.Error())
		return
	}

	surface, err := b.factory(func(ev Event) { b.handleEvent(gen, ev) })
	if err != nil {
		b.log.Warn().Err(err).Msg("surface creation failed")
		b.fail(gen, err.Error())
		return
	}
	if err := surface.Load(doc); err != nil {
		surface.Close()
		b.log.Warn().Err(err).Msg("widget document load failed")
		b.fail(gen, err.Error())
		return
	}

	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		surface.Close()
		return
	}
	b.surface = surface
	b.mu.Unlock()

	if reseekTo > 0 {
		time.AfterFunc(b.graceDelay, func() {
			b.mu.Lock()
			stale := gen != b.gen
			platform := b.sess.platform
			b.mu.Unlock()
			if stale {
				return
			}
			b.log.Info().Float64("position", reseekTo).Msg("reseeking recreated widget")
			surface.Eval(seekJS(platform, reseekTo))
			surface.Eval(playJS())
		})
	}
}

// Pause issues a pause into the live widget, if one exists and is believed alive.
func (b *Bridge) Pause() {
	b.eval(pauseJS())
}

// Resume resumes playback. While the host is not foreground-active the
// surface's script runtime may be suspended and calls would silently do
// nothing, so the resume is deferred until the host becomes active again.
func (b *Bridge) Resume() {
	if !b.phases.Active() {
		b.mu.Lock()
		if b.sess.url != "" {
			b.sess.pendingResume = true
		}
		b.mu.Unlock()
		b.log.Debug().Msg("resume requested while backgrounded, deferring")
		return
	}
	go b.recoverPlayback()
}

// Stop discards the widget and clears the session.
func (b *Bridge) Stop() {
	b.mu.Lock()
	b.gen++
	old := b.surface
	b.surface = nil
	b.sess = widgetSession{}
	b.state = StateIdle
	status := b.statusLocked()
	b.mu.Unlock()

	if old != nil {
		old.Close()
	}
	b.log.Info().Msg("widget stopped")
	b.publish(status)
}

// SeekTo seeks the widget to the given position in seconds, clamped to
// [0, duration]. A no-op while the duration is unknown.
func (b *Bridge) SeekTo(seconds float64) {
	b.mu.Lock()
	if b.sess.duration <= 0 {
		b.mu.Unlock()
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	if seconds > b.sess.duration {
		seconds = b.sess.duration
	}
	b.sess.position = seconds
	platform := b.sess.platform
	surface := b.surface
	b.mu.Unlock()

	if surface != nil && surface.Alive() {
		surface.Eval(seekJS(platform, seconds))
	}
}

// OnLifecycle reacts to host foreground transitions.
func (b *Bridge) OnLifecycle(ev lifecycle.Event) {
	switch ev.Kind {
	case lifecycle.EnterBackground:
		b.mu.Lock()
		if b.sess.url != "" {
			// Audio may keep flowing while the script runtime is
			// frozen; the flag only marks that future control calls
			// need validation.
			b.sess.needsRecreation = true
		}
		b.mu.Unlock()
	case lifecycle.BecomeActive:
		b.mu.Lock()
		fire := b.sess.pendingResume
		b.sess.pendingResume = false
		b.mu.Unlock()
		if fire {
			b.log.Info().Msg("executing deferred resume")
			go b.recoverPlayback()
		}
	}
}

// recoverPlayback probes the current surface and either resumes it or
// recreates the widget from the last known URL, reseeking to the last known
// position after the grace delay.
func (b *Bridge) recoverPlayback() {
	b.mu.Lock()
	gen := b.gen
	url := b.sess.url
	platform := b.sess.platform
	position := b.sess.position
	surface := b.surface
	b.mu.Unlock()

	if url == "" {
		return
	}

	if surface != nil && surface.Alive() {
		if _, err := surface.Eval(playJS()); err == nil {
			b.mu.Lock()
			if gen == b.gen {
				b.sess.needsRecreation = false
			}
			b.mu.Unlock()
			return
		}
	}

	// Unreachable or detached: rebuild the widget from the session.
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.gen++
	newGen := b.gen
	old := b.surface
	b.surface = nil
	b.sess.needsRecreation = false
	b.state = StateLoading
	status := b.statusLocked()
	b.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if b.metrics != nil {
		b.metrics.IncRecreations()
	}
	b.log.Info().Str("url", url).Float64("position", position).Msg("widget unreachable, recreating")
	b.publish(status)

	b.createWidget(newGen, url, platform, position)
}

// handleEvent applies an inbound widget event. Events from discarded
// widgets (gen mismatch) are dropped.
func (b *Bridge) handleEvent(gen int, ev Event) {
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}

	changed := true
	switch ev.Name {
	case EventPlay:
		b.state = StatePlaying
	case EventPause:
		b.state = StatePaused
	case EventFinish:
		b.state = StateIdle
	case EventError:
		// A dead third-party widget is not silently replayed.
		b.state = StateFailed
		if b.metrics != nil {
			b.metrics.IncPlaybackErrors()
		}
	case EventDuration:
		b.sess.duration = toSeconds(b.sess.platform, ev.Duration)
	case EventProgress:
		b.sess.position = toSeconds(b.sess.platform, ev.Position)
		if ev.Duration > 0 {
			b.sess.duration = toSeconds(b.sess.platform, ev.Duration)
		}
	default:
		changed = false
	}

	var status Status
	if changed {
		status = b.statusLocked()
	}
	b.mu.Unlock()

	if ev.Name == EventError {
		b.log.Warn().Str("data", ev.Data).Msg("widget reported error")
	}
	if changed {
		b.publish(status)
	}
}

// fail marks the generation's widget failed unless it was superseded.
func (b *Bridge) fail(gen int, reason string) {
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.state = StateFailed
	status := b.statusLocked()
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.IncPlaybackErrors()
	}
	b.log.Warn().Str("reason", reason).Msg("widget failed")
	b.publish(status)
}

// eval issues a control call into the live widget if one exists and is
// believed alive; a no-op otherwise.
func (b *Bridge) eval(js string) {
	b.mu.Lock()
	surface := b.surface
	b.mu.Unlock()

	if surface == nil || !surface.Alive() {
		return
	}
	if _, err := surface.Eval(js); err != nil {
		b.log.Warn().Err(err).Str("js", js).Msg("widget call failed")
	}
}

// publish delivers a status snapshot to subscribers.
func (b *Bridge) publish(status Status) {
	b.mu.Lock()
	listeners := make([]func(Status), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}

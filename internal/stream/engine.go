package stream

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/lifecycle"
	"github.com/tsdcosta/refuge-player/internal/platform/metrics"
)

// engineSession is the engine's mutable per-item state, guarded by Engine.mu.
type engineSession struct {
	url     string
	live    bool
	intent  bool // user wants audio; survives transient failures, drives retry
	retries int
}

// Engine is the native stream backend. It plays the live stream or a direct
// on-demand URL through a Pipeline and retries failed items at a fixed delay
// for as long as the user's intent to play stands.
type Engine struct {
	liveURL    string
	factory    PipelineFactory
	retryDelay time.Duration
	log        zerolog.Logger
	metrics    *metrics.Metrics

	mu       sync.Mutex
	sess     engineSession
	state    State
	position float64
	duration float64
	pipeline Pipeline
	cancel   context.CancelFunc
	gen      int // invalidates stale pipeline events and pending retries

	// last requested source, retained across Stop for Toggle
	lastURL  string
	lastLive bool

	listeners []func(Status)
}

// NewEngine creates a native stream engine. m may be nil.
func NewEngine(liveURL string, factory PipelineFactory, retryDelay time.Duration, log zerolog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		liveURL:    liveURL,
		factory:    factory,
		retryDelay: retryDelay,
		log:        log,
		metrics:    m,
	}
}

// Subscribe registers fn for status changes. Listeners run synchronously on
// the goroutine that caused the transition, without the engine lock held.
func (e *Engine) Subscribe(fn func(Status)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *Engine) statusLocked() Status {
	return Status{
		State:    e.state,
		URL:      e.sess.url,
		Live:     e.sess.live,
		Position: e.position,
		Duration: e.duration,
	}
}

// PlayLive starts the station's live stream.
func (e *Engine) PlayLive() {
	e.play(e.liveURL, true, 0)
}

// PlayURL starts a direct on-demand audio URL.
func (e *Engine) PlayURL(url string) {
	e.play(url, false, 0)
}

// SeekTo restarts the current on-demand item at the given offset in seconds.
// Live playback and unknown durations ignore the seek.
func (e *Engine) SeekTo(seconds float64) {
	e.mu.Lock()
	if e.sess.live || e.duration <= 0 || e.sess.url == "" {
		e.mu.Unlock()
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	if seconds > e.duration {
		seconds = e.duration
	}
	url, live := e.sess.url, e.sess.live
	e.mu.Unlock()

	e.play(url, live, seconds)
}

// play replaces the current item: any running pipeline is discarded, intent
// is set, and a fresh pipeline starts asynchronously.
func (e *Engine) play(url string, live bool, startAt float64) {
	e.mu.Lock()
	status, start := e.playLocked(url, live, startAt)
	e.mu.Unlock()

	e.log.Info().Str("url", url).Bool("live", live).Float64("start_at", startAt).Msg("starting native playback")
	e.publish(status)

	// Pipeline startup can block on process spawn; keep the caller's
	// goroutine free.
	go start()
}

// playLocked replaces the current item under e.mu and prepares a fresh
// pipeline. The returned func starts the pipeline and must run off the lock.
func (e *Engine) playLocked(url string, live bool, startAt float64) (Status, func()) {
	e.gen++
	gen := e.gen
	e.stopPipelineLocked()

	e.sess = engineSession{url: url, live: live, intent: true}
	e.lastURL, e.lastLive = url, live
	e.state = StateLoading
	e.position = startAt
	e.duration = 0

	onEvent := func(ev Event) { e.handleEvent(gen, ev) }
	pipeline := e.factory(onEvent)
	e.pipeline = pipeline

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	return e.statusLocked(), func() {
		if err := pipeline.Start(ctx, url, startAt); err != nil {
			e.log.Warn().Err(err).Str("url", url).Msg("pipeline start failed")
			e.handleEvent(gen, Event{Kind: EventFailed, Err: err})
		}
	}
}

// Stop clears intent, tears down the pipeline, and publishes idle. It is the
// only way to cancel pending retries.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.gen++
	e.stopPipelineLocked()
	e.sess = engineSession{}
	e.state = StateIdle
	e.position = 0
	e.duration = 0
	status := e.statusLocked()
	e.mu.Unlock()

	e.log.Info().Msg("native playback stopped")
	e.publish(status)
}

// Toggle stops when intent is set, otherwise replays the last requested source.
func (e *Engine) Toggle() {
	e.mu.Lock()
	intent := e.sess.intent
	url, live := e.lastURL, e.lastLive
	e.mu.Unlock()

	if intent {
		e.Stop()
		return
	}
	if url == "" {
		return
	}
	e.play(url, live, 0)
}

// OnLifecycle reacts to host audio-session signals. Interruptions and route
// loss stop playback unconditionally; there is no auto-resume.
func (e *Engine) OnLifecycle(ev lifecycle.Event) {
	switch ev.Kind {
	case lifecycle.AudioInterruption, lifecycle.RouteLost:
		e.mu.Lock()
		active := e.sess.intent
		e.mu.Unlock()
		if active {
			e.log.Info().Str("signal", ev.Kind.String()).Msg("audio session lost, stopping")
			e.Stop()
		}
	}
}

// handleEvent applies a pipeline event. Events from superseded pipelines
// (gen mismatch) are dropped.
func (e *Engine) handleEvent(gen int, ev Event) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}

	changed := false
	switch ev.Kind {
	case EventReady:
		if e.sess.intent {
			e.state = StatePlaying
			e.sess.retries = 0
			changed = true
		}
	case EventWaiting:
		// Ignored without intent to avoid a buffering flicker right
		// after a deliberate stop.
		if e.sess.intent && e.state != StateBuffering {
			e.state = StateBuffering
			changed = true
		}
	case EventPaused:
		// A paused transport while intent stands is a transient the
		// platform surfaces around buffering, not a user-visible pause.
		if !e.sess.intent && e.state != StateStopped {
			e.state = StateStopped
			changed = true
		}
	case EventProgress:
		e.position = ev.Position
		if e.state == StateBuffering && e.sess.intent {
			e.state = StatePlaying
		}
		changed = true
	case EventDuration:
		if !e.sess.live {
			e.duration = ev.Duration
			changed = true
		}
	case EventFinished:
		if e.state != StateStopped {
			e.sess.intent = false
			e.state = StateStopped
			changed = true
		}
	case EventFailed:
		e.state = StateFailed
		changed = true
		if e.sess.intent {
			e.scheduleRetryLocked(gen, ev)
		}
	}

	var status Status
	if changed {
		status = e.statusLocked()
	}
	e.mu.Unlock()

	if changed {
		e.publish(status)
	}
}

// scheduleRetryLocked arms a fixed-delay retry for the current item. The
// retry self-cancels when intent was cleared or the item was replaced in
// the meantime.
func (e *Engine) scheduleRetryLocked(gen int, ev Event) {
	e.sess.retries++
	url, live := e.sess.url, e.sess.live
	resumeAt := e.position
	if e.metrics != nil {
		e.metrics.IncNativeRetries()
	}
	e.log.Warn().Err(ev.Err).Str("url", url).Int("attempt", e.sess.retries).
		Dur("delay", e.retryDelay).Msg("native playback failed, retrying")

	// The staleness check and the restart share one critical section, so a
	// play request landing in between cannot be overridden by the retry.
	time.AfterFunc(e.retryDelay, func() {
		e.mu.Lock()
		if gen != e.gen || !e.sess.intent || e.sess.url != url {
			e.mu.Unlock()
			return
		}
		if live {
			resumeAt = 0
		}
		status, start := e.playLocked(url, live, resumeAt)
		e.mu.Unlock()

		e.log.Info().Str("url", url).Bool("live", live).Float64("start_at", resumeAt).Msg("retrying native playback")
		e.publish(status)
		go start()
	})
}

// publish delivers a status snapshot to subscribers.
func (e *Engine) publish(status Status) {
	e.mu.Lock()
	listeners := make([]func(Status), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}

func (e *Engine) stopPipelineLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.pipeline != nil {
		e.pipeline.Stop()
		e.pipeline = nil
	}
}

// Package stream provides the native playback engine for the live stream
// and direct on-demand audio URLs. It wraps a Pipeline that decodes a
// stream URL straight to the default audio output device.
package stream

import "context"

// State is the engine's per-item playback state.
type State int

const (
	// StateIdle means no item is loaded.
	StateIdle State = iota
	// StateLoading means an item was requested and the pipeline is starting.
	StateLoading
	// StatePlaying means audio is flowing.
	StatePlaying
	// StateBuffering means playback stalled while the user still wants audio.
	StateBuffering
	// StateStopped means playback ended deliberately or ran to completion.
	StateStopped
	// StateFailed means the pipeline reported an error for the current item.
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

// Status is a thread-safe snapshot of the engine.
type Status struct {
	State    State
	URL      string
	Live     bool
	Position float64 // seconds
	Duration float64 // seconds, 0 while unknown and for live
}

// IsPlaying reports whether audio is flowing.
func (s Status) IsPlaying() bool {
	return s.State == StatePlaying
}

// IsBuffering reports whether the engine is working towards audio.
func (s Status) IsBuffering() bool {
	return s.State == StateLoading || s.State == StateBuffering
}

// EventKind identifies a pipeline transport event.
type EventKind int

const (
	// EventReady fires when the pipeline produced its first audio.
	EventReady EventKind = iota
	// EventWaiting fires when the pipeline stalls waiting for data.
	EventWaiting
	// EventPaused fires when the pipeline observes a paused transport.
	EventPaused
	// EventProgress carries the current playback position.
	EventProgress
	// EventDuration carries the item duration once known.
	EventDuration
	// EventFinished fires when the item ran to completion.
	EventFinished
	// EventFailed fires when the pipeline died with an error.
	EventFailed
)

// Event is a transport event reported by a Pipeline.
type Event struct {
	Kind     EventKind
	Position float64 // seconds, EventProgress
	Duration float64 // seconds, EventDuration
	Err      error   // EventFailed
}

// Pipeline plays a stream URL to the default audio output device and
// reports transport events through the callback it was created with.
type Pipeline interface {
	// Start begins playback of streamURL at the given offset in seconds.
	// It returns once the underlying process is running; events follow
	// asynchronously.
	Start(ctx context.Context, streamURL string, startAt float64) error

	// Stop tears the pipeline down. No events are delivered after Stop.
	Stop()
}

// PipelineFactory creates a fresh Pipeline whose events are delivered to
// onEvent. A new pipeline is created for every play and retry.
type PipelineFactory func(onEvent func(Event)) Pipeline

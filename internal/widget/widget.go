// Package widget plays embedded-platform shows through a hidden scriptable
// web surface hosting the platform's player widget. The bridge owns the
// surface lifecycle, the control/event message protocol, and recovery from
// host-app suspension.
package widget

import (
	"fmt"

	"github.com/tsdcosta/refuge-player/internal/source"
)

// State is the bridge's playback state.
type State int

const (
	// StateIdle means no widget is active.
	StateIdle State = iota
	// StateLoading means a widget document is loading or recovering.
	StateLoading
	// StatePlaying means the widget reported active playback.
	StatePlaying
	// StatePaused means the widget reported a pause.
	StatePaused
	// StateFailed means the widget reported an error. Failed widgets are
	// never replayed without user action.
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
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is a thread-safe snapshot of the bridge.
type Status struct {
	State    State
	URL      string
	Platform source.Kind
	Position float64 // seconds
	Duration float64 // seconds, 0 while unknown
}

// IsPlaying reports whether the widget is audibly playing.
func (s Status) IsPlaying() bool {
	return s.State == StatePlaying
}

// IsBuffering reports whether the bridge is working towards audio.
func (s Status) IsBuffering() bool {
	return s.State == StateLoading
}

// Event is an inbound message from the widget document. Position and
// duration arrive in the platform's native unit and are normalized to
// seconds at the bridge boundary.
type Event struct {
	Name     string  `json:"event"`
	Position float64 `json:"position,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Data     string  `json:"data,omitempty"`
}

// Inbound event names of the widget protocol.
const (
	EventPlay     = "play"
	EventPause    = "pause"
	EventFinish   = "finish"
	EventError    = "error"
	EventDuration = "duration"
	EventProgress = "progress"
)

// Surface is a hidden scriptable rendering surface. Implementations must be
// driven from a single goroutine at a time; the bridge guarantees this.
type Surface interface {
	// Load replaces the surface's document.
	Load(html string) error

	// Eval evaluates a JavaScript function expression in the document and
	// returns its result rendered as a string.
	Eval(js string) (string, error)

	// Alive is a lightweight reachability probe against the script
	// runtime. It returns false once the runtime was suspended and torn
	// down or the surface was detached.
	Alive() bool

	// Close detaches the surface.
	Close() error
}

// SurfaceFactory creates a fresh surface whose widget events are delivered
// to emit. A new surface is created per play and per recreation.
type SurfaceFactory func(emit func(Event)) (Surface, error)

// Outbound control calls of the widget protocol.
func playJS() string  { return "() => __widgetPlay()" }
func pauseJS() string { return "() => __widgetPause()" }

func seekJS(platform source.Kind, seconds float64) string {
	return fmt.Sprintf("() => __widgetSeek(%v)", toNativeUnit(platform, seconds))
}

// toSeconds normalizes a platform-native value to seconds. The Soundcloud
// widget reports milliseconds; Mixcloud reports seconds.
func toSeconds(platform source.Kind, v float64) float64 {
	if platform == source.KindSoundcloud {
		return v / 1000
	}
	return v
}

// toNativeUnit converts seconds to the platform's native unit for outbound calls.
func toNativeUnit(platform source.Kind, seconds float64) float64 {
	if platform == source.KindSoundcloud {
		return seconds * 1000
	}
	return seconds
}

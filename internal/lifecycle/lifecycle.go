// Package lifecycle distributes host-application signals to playback components.
// The host shell reports foreground/background transitions and audio-session
// events; backends subscribe to react.
package lifecycle

import "sync"

// EventKind identifies a host signal.
type EventKind int

const (
	// EnterBackground fires when the host application leaves the foreground.
	EnterBackground EventKind = iota
	// BecomeActive fires when the host application returns to the foreground.
	BecomeActive
	// AudioInterruption fires when another audio source takes over the output.
	AudioInterruption
	// RouteLost fires when the active audio output route disappears.
	RouteLost
)

// String returns a human-readable label for the event kind.
func (k EventKind) String() string {
	switch k {
	case EnterBackground:
		return "background"
	case BecomeActive:
		return "active"
	case AudioInterruption:
		return "interruption"
	case RouteLost:
		return "route_lost"
	default:
		return "unknown"
	}
}

// Event is a single host signal.
type Event struct {
	Kind EventKind
}

// Notifier fans host signals out to subscribers and tracks whether the host
// is foreground-active. Listeners run synchronously on the publishing
// goroutine, in subscription order.
type Notifier struct {
	mu        sync.Mutex
	active    bool
	listeners []func(Event)
}

// NewNotifier returns a Notifier that starts foreground-active.
func NewNotifier() *Notifier {
	return &Notifier{active: true}
}

// Subscribe registers fn for all future events.
func (n *Notifier) Subscribe(fn func(Event)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// Publish records the event and invokes subscribers.
func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	switch ev.Kind {
	case EnterBackground:
		n.active = false
	case BecomeActive:
		n.active = true
	}
	listeners := make([]func(Event), len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// Active reports whether the host is currently foreground-active.
func (n *Notifier) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

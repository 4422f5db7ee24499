package lifecycle

import "testing"

func TestNotifier_StartsActive(t *testing.T) {
	n := NewNotifier()
	if !n.Active() {
		t.Error("expected notifier to start foreground-active")
	}
}

func TestNotifier_TracksForeground(t *testing.T) {
	n := NewNotifier()

	n.Publish(Event{Kind: EnterBackground})
	if n.Active() {
		t.Error("expected inactive after EnterBackground")
	}

	n.Publish(Event{Kind: BecomeActive})
	if !n.Active() {
		t.Error("expected active after BecomeActive")
	}
}

func TestNotifier_DeliversInOrder(t *testing.T) {
	n := NewNotifier()

	var got []EventKind
	n.Subscribe(func(ev Event) {
		got = append(got, ev.Kind)
	})

	n.Publish(Event{Kind: EnterBackground})
	n.Publish(Event{Kind: AudioInterruption})
	n.Publish(Event{Kind: BecomeActive})

	want := []EventKind{EnterBackground, AudioInterruption, BecomeActive}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNotifier_ActiveStateVisibleToListener(t *testing.T) {
	n := NewNotifier()

	var activeDuring bool
	n.Subscribe(func(ev Event) {
		activeDuring = n.Active()
	})

	n.Publish(Event{Kind: EnterBackground})
	if activeDuring {
		t.Error("listener should observe inactive state during EnterBackground delivery")
	}
}

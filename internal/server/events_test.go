package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/playback"
)

func startEventServer(t *testing.T) *EventServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s := NewEventServer(filepath.Join(t.TempDir(), "events.sock"), zerolog.Nop())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start event server: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		s.Stop()
	})
	return s
}

func dialEvents(t *testing.T, s *EventServer) *bufio.Reader {
	t.Helper()
	conn, err := net.DialTimeout("unix", s.SocketPath(), time.Second)
	if err != nil {
		t.Fatalf("dial event socket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return bufio.NewReader(conn)
}

func TestEventServer_BroadcastsStateChanges(t *testing.T) {
	s := startEventServer(t)
	reader := dialEvents(t, s)

	// Connection registration happens on the accept goroutine.
	time.Sleep(50 * time.Millisecond)

	s.Broadcast(playback.Snapshot{
		Backend:  playback.BackendNative,
		State:    playback.StatePlaying,
		URL:      "https://streaming.example.org/refuge",
		Live:     true,
		Metadata: playback.Metadata{Title: "Refuge Worldwide"},
	})

	line, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatalf("read event: %v", err)
	}

	var ev StateEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if ev.Event != "state" || ev.Backend != "native" || ev.State != "playing" || !ev.Live {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Metadata.Title != "Refuge Worldwide" {
		t.Errorf("unexpected metadata %+v", ev.Metadata)
	}
}

func TestEventServer_GreetsNewClientsWithCurrentState(t *testing.T) {
	s := startEventServer(t)

	s.Broadcast(playback.Snapshot{
		Backend: playback.BackendWidget,
		State:   playback.StatePaused,
		URL:     "https://soundcloud.com/refugeworldwide/show-1",
	})

	reader := dialEvents(t, s)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatalf("read greeting: %v", err)
	}

	var ev StateEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		t.Fatalf("unmarshal greeting: %v", err)
	}
	if ev.Backend != "widget" || ev.State != "paused" {
		t.Errorf("unexpected greeting %+v", ev)
	}
}

func TestEventServer_StalledClientDoesNotBlockBroadcast(t *testing.T) {
	s := startEventServer(t)

	// This client connects and never reads, so its socket buffer and then
	// its queue fill up.
	stalled, err := net.DialTimeout("unix", s.SocketPath(), time.Second)
	if err != nil {
		t.Fatalf("dial event socket: %v", err)
	}
	defer stalled.Close()
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			s.Broadcast(playback.Snapshot{
				Backend:  playback.BackendNative,
				State:    playback.StatePlaying,
				URL:      "https://streaming.example.org/refuge",
				Live:     true,
				Position: float64(i),
				Metadata: playback.Metadata{Title: "Refuge Worldwide"},
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("broadcast blocked on a client that stopped reading")
	}

	// The stalled client was dropped; fresh clients are still served.
	reader := dialEvents(t, s)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatalf("read greeting after stalled client: %v", err)
	}
	var ev StateEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		t.Fatalf("unmarshal greeting: %v", err)
	}
	if ev.State != "playing" {
		t.Errorf("unexpected greeting %+v", ev)
	}
}

func TestEventServer_SurvivesClientDisconnect(t *testing.T) {
	s := startEventServer(t)

	conn, err := net.DialTimeout("unix", s.SocketPath(), time.Second)
	if err != nil {
		t.Fatalf("dial event socket: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	conn.Close()
	time.Sleep(50 * time.Millisecond)

	// Broadcasting into a closed connection must not panic or wedge.
	s.Broadcast(playback.Snapshot{State: playback.StateStopped})

	reader := dialEvents(t, s)
	if _, err := reader.ReadBytes('\n'); err != nil {
		t.Fatalf("second client must still be served: %v", err)
	}
}

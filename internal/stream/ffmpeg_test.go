package stream

import (
	"bufio"
	"strings"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"00:00:30.00", 30, true},
		{"00:03:00.00", 180, true},
		{"01:00:00.50", 3600.5, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"30", 0, false},
		{"aa:bb:cc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseClock(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseClock(%q) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScanStatusLines(t *testing.T) {
	input := "Duration: 00:57:00.00, start: 0\rsize= 1024kB time=00:00:30.00 bitrate= 128kbits/s\nlast"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanStatusLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "Duration") {
		t.Errorf("expected duration line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "time=") {
		t.Errorf("expected progress line second, got %q", lines[1])
	}
}

func TestFFmpegPipeline_ProgressParsing(t *testing.T) {
	var events []Event
	p := NewFFmpegPipeline(DefaultConfig(), func(ev Event) {
		events = append(events, ev)
	})

	stderr := strings.NewReader(
		"Input #0, mp3, from 'https://archive.example.org/a.mp3':\n" +
			"  Duration: 00:03:00.00, start: 0.000000, bitrate: 128 kb/s\n" +
			"size=     256kB time=00:00:15.00 bitrate= 128.0kbits/s\r" +
			"size=     512kB time=00:00:30.00 bitrate= 128.0kbits/s\r")
	p.readProgress(nopCloser{stderr}, 0)

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}
	if events[0].Kind != EventDuration || events[0].Duration != 180 {
		t.Errorf("expected duration 180, got %+v", events[0])
	}
	if events[1].Kind != EventReady {
		t.Errorf("expected ready on first progress, got %+v", events[1])
	}
	if events[2].Kind != EventProgress || events[2].Position != 15 {
		t.Errorf("expected progress 15, got %+v", events[2])
	}
	if events[3].Kind != EventProgress || events[3].Position != 30 {
		t.Errorf("expected progress 30, got %+v", events[3])
	}
}

func TestFFmpegPipeline_ProgressOffsetBySeekPoint(t *testing.T) {
	var events []Event
	p := NewFFmpegPipeline(DefaultConfig(), func(ev Event) {
		events = append(events, ev)
	})

	stderr := strings.NewReader("size= 128kB time=00:00:05.00 bitrate= 128kbits/s\r")
	p.readProgress(nopCloser{stderr}, 25)

	last := events[len(events)-1]
	if last.Kind != EventProgress || last.Position != 30 {
		t.Errorf("expected progress 30 (5s past the 25s seek point), got %+v", last)
	}
}

type nopCloser struct{ r *strings.Reader }

func (n nopCloser) Read(p []byte) (int, error) { return n.r.Read(p) }
func (n nopCloser) Close() error               { return nil }

package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// Config holds audio output configuration for the ffmpeg pipeline.
type Config struct {
	SampleRate int     // Sample rate in Hz (default: 48000)
	Channels   int     // Number of channels (default: 2)
	Volume     float64 // Volume multiplier 0.0-2.0 (default: 1.0)
}

// DefaultConfig returns the default output configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Channels:   2,
		Volume:     1.0,
	}
}

// FFmpegPipeline implements Pipeline by decoding a stream URL with an
// ffmpeg subprocess straight to the default audio output device. Transport
// events are derived from ffmpeg's stderr progress reporting and from
// process exit.
type FFmpegPipeline struct {
	config  Config
	onEvent func(Event)

	mu      sync.Mutex
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	stopped bool
}

// NewFFmpegPipeline creates an ffmpeg-backed pipeline delivering events to onEvent.
func NewFFmpegPipeline(config Config, onEvent func(Event)) *FFmpegPipeline {
	return &FFmpegPipeline{config: config, onEvent: onEvent}
}

// Factory returns a PipelineFactory producing ffmpeg pipelines with config.
func Factory(config Config) PipelineFactory {
	return func(onEvent func(Event)) Pipeline {
		return NewFFmpegPipeline(config, onEvent)
	}
}

// Start launches the ffmpeg process. Events follow on internal goroutines.
func (p *FFmpegPipeline) Start(ctx context.Context, streamURL string, startAt float64) error {
	ctx, cancel := context.WithCancel(ctx)

	args := p.buildArgs(streamURL, startAt)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stderr pipe: %w", err)
	}
	cmd.Stdout = nil

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		cancel()
		cmd.Process.Kill()
		cmd.Wait()
		return nil
	}
	p.cmd = cmd
	p.cancel = cancel
	p.mu.Unlock()

	p.emit(Event{Kind: EventWaiting})

	go p.readProgress(stderr, startAt)
	go func() {
		err := cmd.Wait()
		if ctx.Err() != nil {
			return // torn down deliberately
		}
		if err != nil {
			p.emit(Event{Kind: EventFailed, Err: fmt.Errorf("ffmpeg exited: %w", err)})
			return
		}
		p.emit(Event{Kind: EventFinished})
	}()

	return nil
}

// Stop kills the ffmpeg process. No events are delivered after Stop.
func (p *FFmpegPipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
}

func (p *FFmpegPipeline) emit(ev Event) {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped || p.onEvent == nil {
		return
	}
	p.onEvent(ev)
}

func (p *FFmpegPipeline) buildArgs(streamURL string, startAt float64) []string {
	volume := fmt.Sprintf("volume=%.2f", p.config.Volume)
	sampleRate := fmt.Sprintf("%d", p.config.SampleRate)
	channels := fmt.Sprintf("%d", p.config.Channels)

	args := []string{
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
	}
	if startAt > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.2f", startAt))
	}
	args = append(args,
		"-i", streamURL,
		"-af", volume,
		"-ar", sampleRate,
		"-ac", channels,
		"-loglevel", "info",
		"-stats",
	)

	// Platform-specific audio output
	switch runtime.GOOS {
	case "darwin":
		args = append(args, "-f", "audiotoolbox", "-")
	case "linux":
		args = append(args, "-f", "pulse", "default")
	default:
		args = append(args, "-f", "dshow", "audio=default")
	}

	return args
}

// readProgress parses ffmpeg stderr for the item duration and the running
// "time=" progress counter. The first progress sample doubles as the
// ready signal.
func (p *FFmpegPipeline) readProgress(stderr io.ReadCloser, startAt float64) {
	defer stderr.Close()

	ready := false
	durationSeen := false

	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanStatusLines)
	for scanner.Scan() {
		line := scanner.Text()

		if !durationSeen {
			if idx := strings.Index(line, "Duration: "); idx >= 0 {
				raw := strings.TrimSpace(line[idx+len("Duration: "):])
				if comma := strings.Index(raw, ","); comma >= 0 {
					raw = raw[:comma]
				}
				if secs, ok := parseClock(raw); ok {
					durationSeen = true
					p.emit(Event{Kind: EventDuration, Duration: secs})
				}
			}
		}

		if idx := strings.Index(line, "time="); idx >= 0 {
			raw := line[idx+len("time="):]
			if sp := strings.IndexByte(raw, ' '); sp >= 0 {
				raw = raw[:sp]
			}
			secs, ok := parseClock(raw)
			if !ok {
				continue
			}
			// ffmpeg counts from the seek point, not the file start
			secs += startAt
			if !ready {
				ready = true
				p.emit(Event{Kind: EventReady})
			}
			p.emit(Event{Kind: EventProgress, Position: secs})
		}
	}
}

// scanStatusLines splits on both \n and \r; ffmpeg rewrites its stats line
// with carriage returns.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseClock converts an ffmpeg HH:MM:SS.cc clock to seconds.
func parseClock(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return 0, false
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err1 := strconv.ParseFloat(parts[0], 64)
	mins, err2 := strconv.ParseFloat(parts[1], 64)
	secs, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return hours*3600 + mins*60 + secs, true
}

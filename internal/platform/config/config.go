// Package config loads daemon configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config holds the full daemon configuration.
type Config struct {
	Live   LiveConfig   `yaml:"live"`
	API    APIConfig    `yaml:"api"`
	Events EventsConfig `yaml:"events"`
	Native NativeConfig `yaml:"native"`
	Widget WidgetConfig `yaml:"widget"`
	Log    LogConfig    `yaml:"log"`
}

// LiveConfig describes the station's live stream.
type LiveConfig struct {
	StreamURL string `yaml:"stream_url"`
	Title     string `yaml:"title"`
}

// APIConfig configures the HTTP control API.
type APIConfig struct {
	Port int `yaml:"port"`
}

// EventsConfig configures the Unix-socket event stream.
type EventsConfig struct {
	SocketPath string `yaml:"socket_path"`
}

// NativeConfig configures the native stream engine.
type NativeConfig struct {
	RetryDelayMS int `yaml:"retry_delay_ms"`
}

// RetryDelay returns the fixed delay between native playback retries.
func (c NativeConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// WidgetConfig configures the embedded widget bridge.
type WidgetConfig struct {
	GraceDelayMS   int  `yaml:"grace_delay_ms"`
	ProbeTimeoutMS int  `yaml:"probe_timeout_ms"`
	Headless       bool `yaml:"headless"`
}

// GraceDelay returns the delay between widget recreation and the reseek.
func (c WidgetConfig) GraceDelay() time.Duration {
	return time.Duration(c.GraceDelayMS) * time.Millisecond
}

// ProbeTimeout returns the budget for the widget liveness probe.
func (c WidgetConfig) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Live: LiveConfig{
			StreamURL: "https://streaming.radio.example/refuge/listen",
			Title:     "Refuge Worldwide",
		},
		API:    APIConfig{Port: 8180},
		Events: EventsConfig{SocketPath: "/tmp/refuge-player.sock"},
		Native: NativeConfig{RetryDelayMS: 3000},
		Widget: WidgetConfig{
			GraceDelayMS:   1500,
			ProbeTimeoutMS: 500,
			Headless:       true,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads .env (if present), then the YAML file at path (if present),
// then applies environment overrides. Missing files are not errors; a
// malformed YAML file is.
func Load(path string) (Config, error) {
	// .env is optional; system env still applies when it is absent.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Live.StreamURL = GetEnv("REFUGE_LIVE_URL", cfg.Live.StreamURL)
	cfg.Live.Title = GetEnv("REFUGE_LIVE_TITLE", cfg.Live.Title)
	cfg.API.Port = GetEnvInt("REFUGE_API_PORT", cfg.API.Port)
	cfg.Events.SocketPath = GetEnv("REFUGE_EVENTS_SOCKET", cfg.Events.SocketPath)
	cfg.Native.RetryDelayMS = GetEnvInt("REFUGE_RETRY_DELAY_MS", cfg.Native.RetryDelayMS)
	cfg.Widget.GraceDelayMS = GetEnvInt("REFUGE_WIDGET_GRACE_MS", cfg.Widget.GraceDelayMS)
	cfg.Widget.ProbeTimeoutMS = GetEnvInt("REFUGE_WIDGET_PROBE_MS", cfg.Widget.ProbeTimeoutMS)
	cfg.Log.Level = GetEnv("REFUGE_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = GetEnv("REFUGE_LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

// GetEnv returns the value of the environment variable named by key, or
// fallback if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by
// key, or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

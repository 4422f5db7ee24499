package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Port != 8180 {
		t.Errorf("expected default port 8180, got %d", cfg.API.Port)
	}
	if cfg.Native.RetryDelayMS != 3000 {
		t.Errorf("expected default retry delay 3000ms, got %d", cfg.Native.RetryDelayMS)
	}
	if !cfg.Widget.Headless {
		t.Error("expected headless widget surface by default")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("live:\n  stream_url: https://streaming.example.org/listen\napi:\n  port: 9000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Live.StreamURL != "https://streaming.example.org/listen" {
		t.Errorf("unexpected stream url %q", cfg.Live.StreamURL)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.API.Port)
	}
	// Untouched sections keep defaults.
	if cfg.Events.SocketPath != "/tmp/refuge-player.sock" {
		t.Errorf("unexpected socket path %q", cfg.Events.SocketPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REFUGE_API_PORT", "9999")
	t.Setenv("REFUGE_LIVE_TITLE", "Test Radio")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("expected env override port 9999, got %d", cfg.API.Port)
	}
	if cfg.Live.Title != "Test Radio" {
		t.Errorf("expected env override title, got %q", cfg.Live.Title)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("REFUGE_TEST_INT", "not-a-number")
	if got := GetEnvInt("REFUGE_TEST_INT", 42); got != 42 {
		t.Errorf("expected fallback 42, got %d", got)
	}
}

// Package source classifies playback URLs into the backend that owns them.
package source

import (
	"net/url"
	"strings"
)

// Kind identifies which backend owns a playback source and how it behaves.
type Kind int

const (
	// KindLive is the station's live stream. Not seekable, indeterminate duration.
	KindLive Kind = iota
	// KindOnDemandDirect is a direct audio URL played by the native engine.
	KindOnDemandDirect
	// KindSoundcloud is a track hosted on Soundcloud, played through the widget bridge.
	KindSoundcloud
	// KindMixcloud is a show hosted on Mixcloud, played through the widget bridge.
	KindMixcloud
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindOnDemandDirect:
		return "direct"
	case KindSoundcloud:
		return "soundcloud"
	case KindMixcloud:
		return "mixcloud"
	default:
		return "unknown"
	}
}

// Source is a classified playback source.
type Source struct {
	Kind Kind
	URL  string
}

// Embedded reports whether the source must be played through the widget bridge.
func (s Source) Embedded() bool {
	return s.Kind == KindSoundcloud || s.Kind == KindMixcloud
}

// Seekable reports whether seeking is meaningful for the source.
// The live stream is never seekable; everything else is once a duration is known.
func (s Source) Seekable() bool {
	return s.Kind != KindLive
}

// Classify maps a URL to its playback source. It is a pure function:
// the same URL always classifies the same way. liveURL is the station's
// configured live stream URL; an exact match classifies as live.
func Classify(liveURL, rawURL string) Source {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" || trimmed == liveURL {
		return Source{Kind: KindLive, URL: liveURL}
	}

	host := hostOf(trimmed)
	switch {
	case host == "soundcloud.com" || strings.HasSuffix(host, ".soundcloud.com"):
		return Source{Kind: KindSoundcloud, URL: trimmed}
	case host == "mixcloud.com" || strings.HasSuffix(host, ".mixcloud.com"):
		return Source{Kind: KindMixcloud, URL: trimmed}
	default:
		return Source{Kind: KindOnDemandDirect, URL: trimmed}
	}
}

// hostOf extracts the lowercase hostname, tolerating scheme-less input.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return ""
		}
	}
	return strings.ToLower(u.Hostname())
}

package source

import "testing"

const liveURL = "https://streaming.example.org/refuge/listen"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		kind Kind
	}{
		{"live exact match", liveURL, KindLive},
		{"empty falls back to live", "", KindLive},
		{"soundcloud track", "https://soundcloud.com/refugeworldwide/track-1", KindSoundcloud},
		{"soundcloud api host", "https://api.soundcloud.com/tracks/123", KindSoundcloud},
		{"mixcloud show", "https://www.mixcloud.com/RefugeWorldwide/some-show/", KindMixcloud},
		{"direct mp3", "https://archive.example.org/shows/ep1.mp3", KindOnDemandDirect},
		{"scheme-less soundcloud", "soundcloud.com/refugeworldwide/track-1", KindSoundcloud},
		{"soundcloud in path only is not embedded", "https://cdn.example.org/soundcloud.com/file", KindOnDemandDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(liveURL, tt.url)
			if got.Kind != tt.kind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.url, got.Kind, tt.kind)
			}
		})
	}
}

func TestClassifyDeterminism(t *testing.T) {
	urls := []string{
		liveURL,
		"https://soundcloud.com/refugeworldwide/track-1",
		"https://www.mixcloud.com/RefugeWorldwide/some-show/",
		"https://archive.example.org/shows/ep1.mp3",
	}
	for _, u := range urls {
		first := Classify(liveURL, u)
		for i := 0; i < 3; i++ {
			if got := Classify(liveURL, u); got != first {
				t.Errorf("Classify(%q) not deterministic: %v then %v", u, first, got)
			}
		}
	}
}

func TestSourceHelpers(t *testing.T) {
	live := Classify(liveURL, liveURL)
	if live.Seekable() {
		t.Error("live source must not be seekable")
	}
	if live.Embedded() {
		t.Error("live source must not be embedded")
	}

	sc := Classify(liveURL, "https://soundcloud.com/a/b")
	if !sc.Embedded() || !sc.Seekable() {
		t.Error("soundcloud source must be embedded and seekable")
	}

	direct := Classify(liveURL, "https://archive.example.org/a.mp3")
	if direct.Embedded() {
		t.Error("direct source must not be embedded")
	}
	if !direct.Seekable() {
		t.Error("direct source must be seekable")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindLive, "live"},
		{KindOnDemandDirect, "direct"},
		{KindSoundcloud, "soundcloud"},
		{KindMixcloud, "mixcloud"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

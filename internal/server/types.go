package server

import (
	"github.com/tsdcosta/refuge-player/internal/playback"
)

// PlayRequest is the request body for the on-demand play endpoint.
type PlayRequest struct {
	URL        string `json:"url" binding:"required"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ArtworkURL string `json:"artwork_url"`
}

// SeekRequest is the request body for the seek endpoint.
type SeekRequest struct {
	Position float64 `json:"position"`
}

// NowPlayingRequest is the request body for the now-playing update endpoint.
type NowPlayingRequest struct {
	Title      string `json:"title" binding:"required"`
	Subtitle   string `json:"subtitle"`
	ArtworkURL string `json:"artwork_url"`
}

// CommandResponse is the response for control endpoints.
type CommandResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// StatusResponse is the response for the status endpoint.
type StatusResponse struct {
	Backend  string            `json:"backend"`
	State    string            `json:"state"`
	URL      string            `json:"url,omitempty"`
	Live     bool              `json:"live"`
	Position float64           `json:"position"`
	Duration float64           `json:"duration,omitempty"`
	Metadata playback.Metadata `json:"metadata"`
}

// PlayingResponse is the response for the playing query endpoint.
type PlayingResponse struct {
	URL     string `json:"url"`
	Playing bool   `json:"playing"`
	Paused  bool   `json:"paused"`
}

// StateEvent is the wire format of the event stream: one JSON object per
// line on the Unix socket.
type StateEvent struct {
	Event string `json:"event"`
	StatusResponse
}

func statusResponse(snap playback.Snapshot) StatusResponse {
	return StatusResponse{
		Backend:  snap.Backend.String(),
		State:    snap.State.String(),
		URL:      snap.URL,
		Live:     snap.Live,
		Position: snap.Position,
		Duration: snap.Duration,
		Metadata: snap.Metadata,
	}
}

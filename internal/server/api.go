package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/lifecycle"
	"github.com/tsdcosta/refuge-player/internal/playback"
)

// Controller is the playback surface the API drives.
type Controller interface {
	Play()
	PlayURL(rawURL string, meta playback.Metadata)
	Pause()
	Resume()
	Stop()
	Toggle()
	SeekTo(seconds float64)
	IsPlayingURL(rawURL string) bool
	IsPausedURL(rawURL string) bool
	UpdateNowPlayingInfo(meta playback.Metadata)
	Snapshot() playback.Snapshot
}

// API handles HTTP control endpoints.
type API struct {
	controller Controller
	phases     *lifecycle.Notifier
	log        zerolog.Logger
}

// NewAPI creates a new API handler.
func NewAPI(controller Controller, phases *lifecycle.Notifier, log zerolog.Logger) *API {
	return &API{
		controller: controller,
		phases:     phases,
		log:        log,
	}
}

// PlayLive starts the station's live stream.
func (a *API) PlayLive(c *gin.Context) {
	a.log.Info().Msg("api: play live")
	a.controller.Play()
	c.JSON(http.StatusOK, CommandResponse{Status: "playing"})
}

// Play starts on-demand playback of a show URL.
func (a *API) Play(c *gin.Context) {
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CommandResponse{
			Status:  "error",
			Message: fmt.Sprintf("invalid request: %v", err),
		})
		return
	}

	a.log.Info().Str("url", req.URL).Str("title", req.Title).Msg("api: play url")
	a.controller.PlayURL(req.URL, playback.Metadata{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		ArtworkURL: req.ArtworkURL,
	})
	c.JSON(http.StatusOK, CommandResponse{Status: "playing"})
}

// Pause pauses playback on the active backend.
func (a *API) Pause(c *gin.Context) {
	a.controller.Pause()
	c.JSON(http.StatusOK, CommandResponse{Status: "paused"})
}

// Resume resumes playback on the active backend.
func (a *API) Resume(c *gin.Context) {
	a.controller.Resume()
	c.JSON(http.StatusOK, CommandResponse{Status: "playing"})
}

// Stop stops playback and clears the session.
func (a *API) Stop(c *gin.Context) {
	a.controller.Stop()
	c.JSON(http.StatusOK, CommandResponse{Status: "stopped"})
}

// Toggle flips between playing and paused.
func (a *API) Toggle(c *gin.Context) {
	a.controller.Toggle()
	c.JSON(http.StatusOK, CommandResponse{Status: "toggled"})
}

// Seek seeks the active backend to a position in seconds.
func (a *API) Seek(c *gin.Context) {
	var req SeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CommandResponse{
			Status:  "error",
			Message: fmt.Sprintf("invalid request: %v", err),
		})
		return
	}
	if req.Position < 0 {
		c.JSON(http.StatusBadRequest, CommandResponse{
			Status:  "error",
			Message: "position must not be negative",
		})
		return
	}

	a.controller.SeekTo(req.Position)
	c.JSON(http.StatusOK, CommandResponse{Status: "seeked"})
}

// Status returns the unified playback snapshot.
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse(a.controller.Snapshot()))
}

// Playing reports whether a specific URL is the one currently playing.
func (a *API) Playing(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, CommandResponse{
			Status:  "error",
			Message: "url query parameter is required",
		})
		return
	}

	c.JSON(http.StatusOK, PlayingResponse{
		URL:     rawURL,
		Playing: a.controller.IsPlayingURL(rawURL),
		Paused:  a.controller.IsPausedURL(rawURL),
	})
}

// NowPlaying replaces the session's display metadata.
func (a *API) NowPlaying(c *gin.Context) {
	var req NowPlayingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CommandResponse{
			Status:  "error",
			Message: fmt.Sprintf("invalid request: %v", err),
		})
		return
	}

	a.controller.UpdateNowPlayingInfo(playback.Metadata{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		ArtworkURL: req.ArtworkURL,
	})
	c.JSON(http.StatusOK, CommandResponse{Status: "updated"})
}

// Background marks the host as backgrounded.
func (a *API) Background(c *gin.Context) {
	a.log.Info().Msg("api: enter background")
	a.phases.Publish(lifecycle.Event{Kind: lifecycle.EnterBackground})
	c.JSON(http.StatusOK, CommandResponse{Status: "backgrounded"})
}

// Foreground marks the host as foreground-active.
func (a *API) Foreground(c *gin.Context) {
	a.log.Info().Msg("api: become active")
	a.phases.Publish(lifecycle.Event{Kind: lifecycle.BecomeActive})
	c.JSON(http.StatusOK, CommandResponse{Status: "active"})
}

// Interruption signals that another source took the audio output.
func (a *API) Interruption(c *gin.Context) {
	a.log.Info().Msg("api: audio interruption")
	a.phases.Publish(lifecycle.Event{Kind: lifecycle.AudioInterruption})
	c.JSON(http.StatusOK, CommandResponse{Status: "interrupted"})
}

// RouteLost signals that the audio output route disappeared.
func (a *API) RouteLost(c *gin.Context) {
	a.log.Info().Msg("api: audio route lost")
	a.phases.Publish(lifecycle.Event{Kind: lifecycle.RouteLost})
	c.JSON(http.StatusOK, CommandResponse{Status: "route_lost"})
}

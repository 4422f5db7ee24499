// Package nowplaying publishes the current playback session to the desktop
// as an MPRIS media player on the session bus. Shells display the metadata
// and send transport commands back through the exported player interface.
package nowplaying

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
	"github.com/rs/zerolog"

	"github.com/tsdcosta/refuge-player/internal/playback"
)

const (
	busName     = "org.mpris.MediaPlayer2.refuge"
	objectPath  = "/org/mpris/MediaPlayer2"
	rootIface   = "org.mpris.MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"

	trackID = dbus.ObjectPath("/org/refuge/player/track/current")
)

// Controls is the subset of playback control the desktop can invoke.
type Controls interface {
	Pause()
	Resume()
	Toggle()
	Stop()
}

// Sink mirrors playback snapshots onto the MPRIS properties and routes
// transport commands back into the coordinator. It implements
// playback.NowPlayingSink.
type Sink struct {
	controls Controls
	conn     *dbus.Conn
	props    *prop.Properties
	log      zerolog.Logger
}

// NewSink connects to the session bus and claims the MPRIS name. Callers
// should fall back to Noop when no bus is available.
func NewSink(controls Controls, log zerolog.Logger) (*Sink, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("request name %s: %w", busName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("name %s already taken", busName)
	}

	s := &Sink{controls: controls, conn: conn, log: log}

	if err := conn.Export(root{}, objectPath, rootIface); err != nil {
		conn.Close()
		return nil, fmt.Errorf("export root interface: %w", err)
	}
	if err := conn.Export(player{s}, objectPath, playerIface); err != nil {
		conn.Close()
		return nil, fmt.Errorf("export player interface: %w", err)
	}

	props, err := prop.Export(conn, objectPath, map[string]map[string]*prop.Prop{
		rootIface: {
			"Identity":            constProp("Refuge Player"),
			"CanQuit":             constProp(false),
			"CanRaise":            constProp(false),
			"HasTrackList":        constProp(false),
			"SupportedUriSchemes": constProp([]string{}),
			"SupportedMimeTypes":  constProp([]string{}),
		},
		playerIface: {
			"PlaybackStatus": constProp("Stopped"),
			"Metadata":       constProp(map[string]dbus.Variant{}),
			"Position":       constProp(int64(0)),
			"Rate":           constProp(1.0),
			"MinimumRate":    constProp(1.0),
			"MaximumRate":    constProp(1.0),
			"Volume":         constProp(1.0),
			"CanPlay":        constProp(true),
			"CanPause":       constProp(true),
			"CanControl":     constProp(true),
			// Seeking goes through the HTTP API, not the desktop shell,
			// and the player has no queue.
			"CanSeek":       constProp(false),
			"CanGoNext":     constProp(false),
			"CanGoPrevious": constProp(false),
		},
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("export properties: %w", err)
	}
	s.props = props

	log.Info().Str("name", busName).Msg("mpris interface registered")
	return s, nil
}

// Update pushes a snapshot onto the exported MPRIS properties.
func (s *Sink) Update(snap playback.Snapshot) {
	s.props.SetMust(playerIface, "PlaybackStatus", playbackStatus(snap))
	s.props.SetMust(playerIface, "Metadata", metadataMap(snap))
	s.props.SetMust(playerIface, "Position", int64(snap.Position*1e6))
}

// Close releases the bus name and disconnects.
func (s *Sink) Close() {
	s.conn.ReleaseName(busName)
	s.conn.Close()
}

func playbackStatus(snap playback.Snapshot) string {
	switch {
	case snap.IsPlaying():
		return "Playing"
	case snap.IsPaused():
		return "Paused"
	default:
		return "Stopped"
	}
}

func metadataMap(snap playback.Snapshot) map[string]dbus.Variant {
	m := map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(trackID),
	}
	if snap.Metadata.Title != "" {
		m["xesam:title"] = dbus.MakeVariant(snap.Metadata.Title)
	}
	if snap.Metadata.Subtitle != "" {
		m["xesam:artist"] = dbus.MakeVariant([]string{snap.Metadata.Subtitle})
	}
	if snap.Metadata.ArtworkURL != "" {
		m["mpris:artUrl"] = dbus.MakeVariant(snap.Metadata.ArtworkURL)
	}
	if snap.URL != "" {
		m["xesam:url"] = dbus.MakeVariant(snap.URL)
	}
	if snap.Duration > 0 {
		m["mpris:length"] = dbus.MakeVariant(int64(snap.Duration * 1e6))
	}
	return m
}

func constProp(v interface{}) *prop.Prop {
	return &prop.Prop{Value: v, Writable: false, Emit: prop.EmitTrue}
}

// root implements the org.mpris.MediaPlayer2 interface. The player is a
// headless daemon, so Raise and Quit are accepted and ignored.
type root struct{}

func (root) Raise() *dbus.Error { return nil }
func (root) Quit() *dbus.Error  { return nil }

// player implements org.mpris.MediaPlayer2.Player transport commands.
type player struct {
	s *Sink
}

func (p player) Play() *dbus.Error {
	p.s.log.Debug().Msg("mpris: play")
	p.s.controls.Resume()
	return nil
}

func (p player) Pause() *dbus.Error {
	p.s.log.Debug().Msg("mpris: pause")
	p.s.controls.Pause()
	return nil
}

func (p player) PlayPause() *dbus.Error {
	p.s.log.Debug().Msg("mpris: play-pause")
	p.s.controls.Toggle()
	return nil
}

func (p player) Stop() *dbus.Error {
	p.s.log.Debug().Msg("mpris: stop")
	p.s.controls.Stop()
	return nil
}

// Noop is the sink used when no session bus is available.
type Noop struct{}

// Update discards the snapshot.
func (Noop) Update(playback.Snapshot) {}

var (
	_ playback.NowPlayingSink = (*Sink)(nil)
	_ playback.NowPlayingSink = Noop{}
)

package backend

import (
	"errors"
	"path/filepath"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/torriplayer/torriplayer/backend/ipc"
	"github.com/torriplayer/torriplayer/backend/player"
)

const (
	dbusTrackPath     = "/Torriplayer/Media/Current"
	noTrackObjectPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"
)

var (
	_ types.OrgMprisMediaPlayer2Adapter       = (*MPRISHandler)(nil)
	_ types.OrgMprisMediaPlayer2PlayerAdapter = (*MPRISHandler)(nil)
)

var (
	errNotSupported = errors.New("not supported")
)

// MPRISHandler exposes the playback engine on the D-Bus session bus.
type MPRISHandler struct {
	// Function called if the player is requested to quit through MPRIS.
	// Should *asynchronously* start shutdown and return immediately true if a shutdown will happen.
	OnQuit func() error

	// Function called if the player is requested to bring its UI to the front.
	OnRaise func() error

	// Transport commands go through the UI so that refused commands are
	// reported like any other. If nil they go to the engine directly
	// and opening URIs is not supported.
	Commands ipc.PlaybackHandler

	connErr    error
	playerName string
	engine     player.Engine
	formats    *FormatCatalog
	s          *server.Server
	evt        *events.EventHandler
}

func NewMPRISHandler(playerName string, engine player.Engine, formats *FormatCatalog) *MPRISHandler {
	m := &MPRISHandler{playerName: playerName, engine: engine, formats: formats, connErr: errors.New("not started")}
	m.s = server.NewServer(playerName, m, m)
	m.evt = events.NewEventHandler(m.s)

	engine.OnStateChanged(func(player.State) {
		if m.connErr == nil {
			m.evt.Player.OnPlayPause()
			m.evt.Player.OnTitle()
		}
	})
	engine.OnVolumeChanged(func(int) {
		if m.connErr == nil {
			m.evt.Player.OnVolume()
		}
	})

	return m
}

// Starts listening for MPRIS events.
func (m *MPRISHandler) Start() {
	m.connErr = nil
	go func() {
		// exits early with err if unable to establish D-Bus connection
		m.connErr = m.s.Listen()
	}()
}

// Stops listening for MPRIS events and releases any D-Bus resources.
func (m *MPRISHandler) Shutdown() {
	if m.connErr == nil {
		m.s.Stop()
		m.connErr = errors.New("stopped")
	}
}

// OrgMprisMediaPlayer2Adapter implementation

func (m *MPRISHandler) Identity() (string, error) {
	return m.playerName, nil
}

func (m *MPRISHandler) CanQuit() (bool, error) {
	return m.OnQuit != nil, nil
}

func (m *MPRISHandler) Quit() error {
	if m.OnQuit != nil {
		return m.OnQuit()
	}
	return errors.New("no quit handler added")
}

func (m *MPRISHandler) CanRaise() (bool, error) {
	return m.OnRaise != nil, nil
}

func (m *MPRISHandler) Raise() error {
	if m.OnRaise != nil {
		return m.OnRaise()
	}
	return errors.New("no raise handler added")
}

func (m *MPRISHandler) HasTrackList() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (m *MPRISHandler) SupportedMimeTypes() ([]string, error) {
	return m.formats.MIMETypes(), nil
}

// OrgMprisMediaPlayer2PlayerAdapter implementation

// Skipping has no meaning for a single media source.
func (m *MPRISHandler) Next() error {
	return nil
}

func (m *MPRISHandler) Previous() error {
	return nil
}

func (m *MPRISHandler) Pause() error {
	return m.commands().Pause()
}

func (m *MPRISHandler) PlayPause() error {
	if m.engine.State() == player.Playing {
		return m.commands().Pause()
	}
	return m.commands().Play()
}

func (m *MPRISHandler) Stop() error {
	if m.engine.State() == player.Stopped {
		return nil
	}
	return m.commands().Stop()
}

func (m *MPRISHandler) Play() error {
	return m.commands().Play()
}

func (m *MPRISHandler) Seek(types.Microseconds) error {
	return errNotSupported
}

func (m *MPRISHandler) SetPosition(string, types.Microseconds) error {
	return errNotSupported
}

func (m *MPRISHandler) OpenUri(uri string) error {
	return m.commands().OpenURI(uri)
}

func (m *MPRISHandler) PlaybackStatus() (types.PlaybackStatus, error) {
	switch m.engine.State() {
	case player.Playing:
		return types.PlaybackStatusPlaying, nil
	case player.Paused:
		return types.PlaybackStatusPaused, nil
	case player.Stopped:
		return types.PlaybackStatusStopped, nil
	}
	return "", errors.New("unknown playback status")
}

func (m *MPRISHandler) Rate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) SetRate(float64) error {
	return errNotSupported
}

func (m *MPRISHandler) Metadata() (types.Metadata, error) {
	source := m.engine.Source()
	if source == "" || m.engine.State() == player.Stopped {
		return types.Metadata{TrackId: dbus.ObjectPath(noTrackObjectPath)}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(dbusTrackPath),
		Length:  secondsToMicroseconds(m.engine.Duration()),
		Title:   filepath.Base(player.LocalPath(source)),
	}, nil
}

func (m *MPRISHandler) Volume() (float64, error) {
	return float64(m.engine.Volume()) / 100, nil
}

func (m *MPRISHandler) SetVolume(v float64) error {
	return m.commands().SetVolume(int(v * 100))
}

func (m *MPRISHandler) Position() (int64, error) {
	return int64(secondsToMicroseconds(m.engine.Position())), nil
}

func (m *MPRISHandler) MinimumRate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) MaximumRate() (float64, error) {
	return 1, nil
}

func (m *MPRISHandler) CanGoNext() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) CanGoPrevious() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) CanPlay() (bool, error) {
	return m.engine.Source() != "", nil
}

func (m *MPRISHandler) CanPause() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) CanSeek() (bool, error) {
	return false, nil
}

func (m *MPRISHandler) CanControl() (bool, error) {
	return true, nil
}

func (m *MPRISHandler) commands() ipc.PlaybackHandler {
	if m.Commands != nil {
		return m.Commands
	}
	return engineCommands{m.engine}
}

type engineCommands struct {
	player.Engine
}

func (engineCommands) OpenURI(string) error {
	return errNotSupported
}

func secondsToMicroseconds(s float64) types.Microseconds {
	return types.Microseconds(s * 1_000_000)
}

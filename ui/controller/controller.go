package controller

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/torriplayer/torriplayer/backend"
	"github.com/torriplayer/torriplayer/backend/player"
)

// Controls is the set of transport widgets whose state mirrors the engine.
type Controls interface {
	SetPauseEnabled(bool)
	SetStopEnabled(bool)
	SetPreviousEnabled(bool)

	// SetVolume moves the volume control without reporting a change.
	SetVolume(int)
}

// FileChooser presents a file picker restricted to mimeTypes and
// calls onChosen with the chosen path or URI, or "" if cancelled.
type FileChooser interface {
	ChooseFile(mimeTypes []string, startDir string, onChosen func(uri string))
}

// StatusArea shows transient messages in the main window.
type StatusArea interface {
	ShowMessage(msg string, timeout time.Duration)
}

// MIMETypeSource lists the media types the engine can decode.
type MIMETypeSource interface {
	MIMETypes() []string
}

// Controller translates user gestures into engine commands and
// reflects engine state back into the transport controls.
// All methods must be called on the UI goroutine.
type Controller struct {
	Engine   player.Engine
	Formats  MIMETypeSource
	Chooser  FileChooser
	Controls Controls
	Status   StatusArea

	// Destination for playback errors; defaults to the standard logger.
	ErrorLog *log.Logger

	// How long error messages stay in the status area.
	StatusTimeout time.Duration

	// Returns the directory the file chooser starts in.
	StartDir func() string

	mimeTypes []string
}

// Connect subscribes to engine notifications and syncs the controls
// with the current engine state. dispatch runs a callback on the UI goroutine.
func (c *Controller) Connect(dispatch func(func())) {
	c.Engine.OnStateChanged(func(s player.State) {
		dispatch(func() { c.OnPlaybackStateChanged(s) })
	})
	c.Engine.OnError(func(kind player.ErrorKind, msg string) {
		dispatch(func() { c.OnPlaybackError(kind, msg) })
	})
	c.Engine.OnVolumeChanged(func(vol int) {
		dispatch(func() { c.Controls.SetVolume(vol) })
	})
	c.Controls.SetVolume(c.Engine.Volume())
	c.OnPlaybackStateChanged(c.Engine.State())
}

// Open stops playback and asks the user for a media file to play.
func (c *Controller) Open() {
	c.EnsureStopped()
	if c.mimeTypes == nil {
		c.mimeTypes = c.Formats.MIMETypes()
	}
	c.Chooser.ChooseFile(c.mimeTypes, c.startDir(), func(uri string) {
		if uri == "" {
			return
		}
		_ = c.OpenURI(uri)
	})
}

// OpenURI sets the media source and starts playback.
func (c *Controller) OpenURI(uri string) error {
	if err := c.Engine.SetSource(uri); err != nil {
		c.OnPlaybackError(player.ResourceError, err.Error())
		return err
	}
	if f, err := backend.Sniff(player.LocalPath(uri)); err == nil {
		log.Printf("Opening %s (%s)", uri, f.MIMEType)
	} else {
		log.Printf("Opening %s", uri)
	}
	return c.Play()
}

func (c *Controller) Play() error {
	return c.forward(c.Engine.Play)
}

func (c *Controller) Pause() error {
	return c.forward(c.Engine.Pause)
}

func (c *Controller) Stop() error {
	return c.EnsureStopped()
}

// EnsureStopped stops playback unless the engine is already stopped.
func (c *Controller) EnsureStopped() error {
	if c.Engine.State() == player.Stopped {
		return nil
	}
	return c.forward(c.Engine.Stop)
}

// Previous is accepted but has no effect: there is no playlist to skip through.
func (c *Controller) Previous() {}

// Next is accepted but has no effect: there is no playlist to skip through.
func (c *Controller) Next() {}

func (c *Controller) SetVolume(vol int) error {
	return c.Engine.SetVolume(vol)
}

func (c *Controller) Volume() int {
	return c.Engine.Volume()
}

func (c *Controller) OnPlaybackStateChanged(s player.State) {
	c.Controls.SetPauseEnabled(s == player.Playing)
	c.Controls.SetStopEnabled(s != player.Stopped)
	c.Controls.SetPreviousEnabled(c.Engine.Position() > 0)
}

func (c *Controller) OnPlaybackError(kind player.ErrorKind, msg string) {
	l := c.ErrorLog
	if l == nil {
		l = log.Default()
	}
	l.Println(msg)
	timeout := c.StatusTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c.Status.ShowMessage(msg, timeout)
}

// engine commands don't validate; a refused command is reported
// the same way as an asynchronous playback error
func (c *Controller) forward(cmd func() error) error {
	err := cmd()
	if err != nil {
		c.OnPlaybackError(player.ResourceError, err.Error())
	}
	return err
}

func (c *Controller) startDir() string {
	if c.StartDir != nil {
		return c.StartDir()
	}
	return DesktopDir()
}

// DesktopDir returns the user's desktop folder, falling back to the home directory.
func DesktopDir() string {
	if d := os.Getenv("XDG_DESKTOP_DIR"); d != "" {
		if s, err := os.Stat(d); err == nil && s.IsDir() {
			return d
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	desktop := filepath.Join(home, "Desktop")
	if s, err := os.Stat(desktop); err == nil && s.IsDir() {
		return desktop
	}
	return home
}

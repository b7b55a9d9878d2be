package controller

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torriplayer/torriplayer/backend/player"
	"github.com/torriplayer/torriplayer/backend/player/playertest"
)

type fakeControls struct {
	pause, stop, previous bool
	vol                   int
	volSets               int
}

func (f *fakeControls) SetPauseEnabled(b bool)    { f.pause = b }
func (f *fakeControls) SetStopEnabled(b bool)     { f.stop = b }
func (f *fakeControls) SetPreviousEnabled(b bool) { f.previous = b }

func (f *fakeControls) SetVolume(v int) {
	f.vol = v
	f.volSets++
}

type fakeChooser struct {
	shown     int
	mimeTypes []string
	startDir  string
	result    string
}

func (f *fakeChooser) ChooseFile(mimeTypes []string, startDir string, onChosen func(string)) {
	f.shown++
	f.mimeTypes = mimeTypes
	f.startDir = startDir
	onChosen(f.result)
}

type fakeStatus struct {
	msg     string
	timeout time.Duration
}

func (f *fakeStatus) ShowMessage(msg string, timeout time.Duration) {
	f.msg = msg
	f.timeout = timeout
}

type countingFormats struct {
	calls int
}

func (c *countingFormats) MIMETypes() []string {
	c.calls++
	return []string{"audio/mpeg", "video/mp4"}
}

type refusingEngine struct {
	*playertest.FakeEngine
}

func (r refusingEngine) Play() error { return errors.New("no media source set") }

type fixture struct {
	engine   *playertest.FakeEngine
	controls *fakeControls
	chooser  *fakeChooser
	status   *fakeStatus
	formats  *countingFormats
	errLog   *bytes.Buffer
	c        *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		engine:   playertest.New(),
		controls: &fakeControls{},
		chooser:  &fakeChooser{},
		status:   &fakeStatus{},
		formats:  &countingFormats{},
		errLog:   &bytes.Buffer{},
	}
	f.c = &Controller{
		Engine:        f.engine,
		Formats:       f.formats,
		Chooser:       f.chooser,
		Controls:      f.controls,
		Status:        f.status,
		ErrorLog:      log.New(f.errLog, "", 0),
		StatusTimeout: 5 * time.Second,
		StartDir:      func() string { return "/home/me/Desktop" },
	}
	f.c.Connect(func(fn func()) { fn() })
	return f
}

func TestConnectAppliesInitialState(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.controls.pause)
	assert.False(t, f.controls.stop)
	assert.False(t, f.controls.previous)
	assert.Equal(t, 100, f.controls.vol)
}

func TestControlsFollowPlaybackState(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.OpenURI("/media/clip.mp4"))

	assert.Equal(t, player.Playing, f.engine.State())
	assert.True(t, f.controls.pause)
	assert.True(t, f.controls.stop)

	require.NoError(t, f.c.Pause())
	assert.False(t, f.controls.pause)
	assert.True(t, f.controls.stop)

	require.NoError(t, f.c.Stop())
	assert.False(t, f.controls.pause)
	assert.False(t, f.controls.stop)
}

func TestPreviousEnabledOnlyPastStart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.OpenURI("/media/clip.mp4"))
	assert.False(t, f.controls.previous)

	f.engine.SetPosition(12, 60)
	f.engine.EmitState(player.Paused)
	assert.True(t, f.controls.previous)

	f.engine.EmitState(player.Stopped)
	f.engine.SetPosition(0, 60)
	f.engine.EmitState(player.Playing)
	assert.False(t, f.controls.previous)
}

func TestStopWhenStoppedIsNoOp(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.Stop())
	require.NoError(t, f.c.EnsureStopped())
	assert.Zero(t, f.engine.Calls["Stop"])
}

func TestOpenStopsPlaybackBeforeChoosing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.OpenURI("/media/first.mp3"))

	f.chooser.result = ""
	f.c.Open()

	assert.Equal(t, 1, f.engine.Calls["Stop"])
	assert.Equal(t, player.Stopped, f.engine.State())
	assert.Equal(t, 1, f.chooser.shown)
	assert.Equal(t, "/home/me/Desktop", f.chooser.startDir)
	// cancelled: source is unchanged and nothing starts
	assert.Equal(t, "/media/first.mp3", f.engine.Source())
	assert.Equal(t, 1, f.engine.Calls["Play"])
}

func TestOpenPlaysChosenFile(t *testing.T) {
	f := newFixture(t)
	f.chooser.result = "/media/movie.mkv"

	f.c.Open()

	assert.Equal(t, "/media/movie.mkv", f.engine.Source())
	assert.Equal(t, player.Playing, f.engine.State())
	assert.Equal(t, []string{"audio/mpeg", "video/mp4"}, f.chooser.mimeTypes)
}

func TestMIMETypesQueriedOnce(t *testing.T) {
	f := newFixture(t)

	f.c.Open()
	f.c.Open()
	f.c.Open()

	assert.Equal(t, 3, f.chooser.shown)
	assert.Equal(t, 1, f.formats.calls)
}

func TestPlaybackErrorIsLoggedAndShown(t *testing.T) {
	f := newFixture(t)

	f.engine.EmitError(player.ResourceError, "File not found: /media/gone.mp4")

	assert.Equal(t, "File not found: /media/gone.mp4\n", f.errLog.String())
	assert.Equal(t, "File not found: /media/gone.mp4", f.status.msg)
	assert.Equal(t, 5*time.Second, f.status.timeout)
}

func TestRefusedCommandIsReported(t *testing.T) {
	f := newFixture(t)
	f.c.Engine = refusingEngine{f.engine}

	assert.Error(t, f.c.Play())
	assert.Equal(t, "no media source set", f.status.msg)
}

func TestVolumeRoundTrip(t *testing.T) {
	f := newFixture(t)
	sets := f.controls.volSets

	require.NoError(t, f.c.SetVolume(40))
	assert.Equal(t, 40, f.engine.Volume())
	assert.Equal(t, 40, f.controls.vol)
	assert.Equal(t, sets+1, f.controls.volSets)

	// unchanged volume does not echo back to the control
	require.NoError(t, f.c.SetVolume(40))
	assert.Equal(t, sets+1, f.controls.volSets)

	require.NoError(t, f.c.SetVolume(250))
	assert.Equal(t, 100, f.c.Volume())
}

func TestPreviousNextDoNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.OpenURI("/media/clip.mp4"))
	f.engine.SetPosition(30, 60)

	f.c.Previous()
	f.c.Next()

	assert.Equal(t, player.Playing, f.engine.State())
	assert.Equal(t, 30.0, f.engine.Position())
	assert.Equal(t, "/media/clip.mp4", f.engine.Source())
}

func TestDesktopDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DESKTOP_DIR", "")
	assert.Equal(t, home, DesktopDir())

	desktop := filepath.Join(home, "Desktop")
	require.NoError(t, os.Mkdir(desktop, 0755))
	assert.Equal(t, desktop, DesktopDir())

	xdg := t.TempDir()
	t.Setenv("XDG_DESKTOP_DIR", xdg)
	assert.Equal(t, xdg, DesktopDir())
}

package backend

import (
	"errors"
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torriplayer/torriplayer/backend/player"
	"github.com/torriplayer/torriplayer/backend/player/playertest"
)

func TestMPRISTransport(t *testing.T) {
	engine := playertest.New()
	m := NewMPRISHandler("Torriplayer", engine, NewFormatCatalog(nil))

	status, err := m.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, status)

	require.NoError(t, m.Stop())
	assert.Zero(t, engine.Calls["Stop"])

	require.NoError(t, engine.SetSource("/media/clip.mp4"))
	require.NoError(t, m.PlayPause())
	assert.Equal(t, player.Playing, engine.State())
	require.NoError(t, m.PlayPause())
	assert.Equal(t, player.Paused, engine.State())

	status, _ = m.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)
}

func TestMPRISMetadataAndVolume(t *testing.T) {
	engine := playertest.New()
	m := NewMPRISHandler("Torriplayer", engine, NewFormatCatalog(nil))

	md, err := m.Metadata()
	require.NoError(t, err)
	assert.EqualValues(t, noTrackObjectPath, md.TrackId)

	engine.SetSource("file:///media/clip.mp4")
	engine.Play()
	engine.SetPosition(1.5, 60)
	md, _ = m.Metadata()
	assert.Equal(t, "clip.mp4", md.Title)
	assert.Equal(t, types.Microseconds(60_000_000), md.Length)

	pos, _ := m.Position()
	assert.Equal(t, int64(1_500_000), pos)

	require.NoError(t, m.SetVolume(0.4))
	assert.Equal(t, 40, engine.Volume())
	vol, _ := m.Volume()
	assert.InDelta(t, 0.4, vol, 0.001)
}

type recordingCommands struct {
	*playertest.FakeEngine
	calls  []string
	opened string
	err    error
}

func (r *recordingCommands) Play() error  { r.calls = append(r.calls, "Play"); return r.err }
func (r *recordingCommands) Pause() error { r.calls = append(r.calls, "Pause"); return r.err }
func (r *recordingCommands) Stop() error  { r.calls = append(r.calls, "Stop"); return r.err }

func (r *recordingCommands) SetVolume(v int) error {
	r.calls = append(r.calls, "SetVolume")
	return r.err
}

func (r *recordingCommands) OpenURI(uri string) error {
	r.opened = uri
	return r.err
}

func TestMPRISOpenUri(t *testing.T) {
	m := NewMPRISHandler("Torriplayer", playertest.New(), NewFormatCatalog(nil))
	assert.ErrorIs(t, m.OpenUri("file:///a.mkv"), errNotSupported)

	cmds := &recordingCommands{FakeEngine: playertest.New()}
	m.Commands = cmds
	require.NoError(t, m.OpenUri("file:///a.mkv"))
	assert.Equal(t, "file:///a.mkv", cmds.opened)

	next, _ := m.CanGoNext()
	assert.False(t, next)
}

func TestMPRISCommandsGoThroughHandler(t *testing.T) {
	engine := playertest.New()
	m := NewMPRISHandler("Torriplayer", engine, NewFormatCatalog(nil))
	cmds := &recordingCommands{FakeEngine: playertest.New(), err: errors.New("no media source set")}
	m.Commands = cmds

	assert.EqualError(t, m.Play(), "no media source set")
	assert.Error(t, m.PlayPause())
	assert.Error(t, m.SetVolume(0.5))

	engine.SetSource("/media/clip.mp4")
	engine.Play()
	assert.Error(t, m.PlayPause())
	assert.Error(t, m.Pause())
	assert.Error(t, m.Stop())

	assert.Equal(t, []string{"Play", "Play", "SetVolume", "Pause", "Pause", "Stop"}, cmds.calls)
	assert.Zero(t, engine.Calls["Pause"])
	assert.Zero(t, engine.Calls["Stop"])
	assert.Equal(t, 100, engine.Volume())
}

package backend

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	demuxers []string
	err      error
	calls    int
}

func (f *fakeLister) SupportedDemuxers() ([]string, error) {
	f.calls++
	return f.demuxers, f.err
}

func TestFormatCatalogComputedOnce(t *testing.T) {
	l := &fakeLister{demuxers: []string{"matroska,webm", "mp3"}}
	c := NewFormatCatalog(l)

	first := c.MIMETypes()
	second := c.MIMETypes()
	c.Extensions()

	assert.Equal(t, 1, l.calls)
	assert.Equal(t, first, second)
}

func TestFormatCatalogFiltersByDemuxer(t *testing.T) {
	c := NewFormatCatalog(&fakeLister{demuxers: []string{"matroska,webm", "mp3"}})

	exts := c.Extensions()
	assert.Contains(t, exts, ".mkv")
	assert.Contains(t, exts, ".webm")
	assert.Contains(t, exts, ".mp3")
	assert.NotContains(t, exts, ".avi")
	assert.NotContains(t, exts, ".flac")

	mimes := c.MIMETypes()
	assert.Contains(t, mimes, "audio/mpeg")
	assert.True(t, slices.IsSorted(mimes))
}

func TestFormatCatalogFallsBackToAllFormats(t *testing.T) {
	c := NewFormatCatalog(&fakeLister{err: errors.New("mpv gone")})

	exts := c.Extensions()
	assert.Contains(t, exts, ".mp4")
	assert.Contains(t, exts, ".flac")

	var sawVideo, sawAudio bool
	for _, f := range c.Formats() {
		if f.IsVideo {
			sawVideo = true
		} else {
			sawAudio = true
		}
	}
	assert.True(t, sawVideo)
	assert.True(t, sawAudio)
}

func TestSniff(t *testing.T) {
	dir := t.TempDir()

	// minimal RIFF/WAVE header
	wav := filepath.Join(dir, "tone")
	header := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
	require.NoError(t, os.WriteFile(wav, header, 0644))
	f, err := Sniff(wav)
	require.NoError(t, err)
	assert.Equal(t, "wav", f.Extension)
	assert.False(t, f.IsVideo)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello world"), 0644))
	_, err = Sniff(txt)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

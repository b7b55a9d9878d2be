package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig("v1.0.0")
	c.LocalPlayback.HardwareDecoding = "no"
	c.Application.StatusMessageSeconds = 8
	require.NoError(t, c.WriteConfigFile(path))

	read, err := ReadConfigFile(path, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, c, read)
}

func TestReadConfigFileFillsDefaultsAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[LocalPlayback]
InMemoryCacheSizeMB = 1
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	c, err := ReadConfigFile(path, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, 10, c.LocalPlayback.InMemoryCacheSizeMB)
	assert.Equal(t, "auto", c.LocalPlayback.AudioDeviceName)
	assert.Equal(t, 5, c.Application.StatusMessageSeconds)
}

func TestReadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[LocalPlayback\nVolume ="), 0644))

	_, err := ReadConfigFile(path, "v1.0.0")
	assert.Error(t, err)
}

func TestSessionStateIsNotRestored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[Application]
WindowWidth = 800
WindowHeight = 500

[LocalPlayback]
Volume = 35
HardwareDecoding = "no"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	c, err := ReadConfigFile(path, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "no", c.LocalPlayback.HardwareDecoding)

	require.NoError(t, c.WriteConfigFile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Window")
	assert.NotContains(t, string(b), "Volume")
}

func TestStartupVolume(t *testing.T) {
	assert.Equal(t, 100, startupVolume(-1))
	assert.Equal(t, 40, startupVolume(40))
	assert.Equal(t, 100, startupVolume(250))
	assert.Equal(t, 0, startupVolume(0))
}

package backend

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

type AppConfig struct {
	LastLaunchedVersion  string
	AllowMultiInstance   bool
	StatusMessageSeconds int
}

type LocalPlaybackConfig struct {
	AudioDeviceName     string
	InMemoryCacheSizeMB int
	HardwareDecoding    string
}

// Config holds engine tuning and app behaviour only. Window geometry
// and volume are not persisted: every session starts at half the screen
// work area and at full volume unless -volume is given.
type Config struct {
	Application   AppConfig
	LocalPlayback LocalPlaybackConfig
}

func DefaultConfig(appVersionTag string) *Config {
	return &Config{
		Application: AppConfig{
			LastLaunchedVersion:  appVersionTag,
			AllowMultiInstance:   false,
			StatusMessageSeconds: 5,
		},
		LocalPlayback: LocalPlaybackConfig{
			// "auto" is the name to pass to MPV for autoselecting the output device
			AudioDeviceName:     "auto",
			InMemoryCacheSizeMB: 150,
			HardwareDecoding:    "auto-safe",
		},
	}
}

func ReadConfigFile(filepath, appVersionTag string) (*Config, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := DefaultConfig(appVersionTag)
	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return nil, err
	}
	c.Sanitize()
	return c, nil
}

// Sanitize clamps out-of-range values read from a hand-edited file.
func (c *Config) Sanitize() {
	c.LocalPlayback.InMemoryCacheSizeMB = clamp(c.LocalPlayback.InMemoryCacheSizeMB, 10, 1000)
	if c.LocalPlayback.AudioDeviceName == "" {
		c.LocalPlayback.AudioDeviceName = "auto"
	}
	if c.Application.StatusMessageSeconds <= 0 {
		c.Application.StatusMessageSeconds = 5
	}
}

var writeLock sync.Mutex

func (c *Config) WriteConfigFile(filepath string) error {
	if !writeLock.TryLock() {
		return nil // another write in progress
	}
	defer writeLock.Unlock()

	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, b, 0644)
}

func clamp(i, min, max int) int {
	if i < min {
		i = min
	} else if i > max {
		i = max
	}
	return i
}

// Package playertest provides an in-memory player.Engine for tests.
package playertest

import (
	"github.com/torriplayer/torriplayer/backend/player"
)

var _ player.Engine = (*FakeEngine)(nil)

// FakeEngine is a player.Engine that keeps its state in memory
// and records the commands it receives.
type FakeEngine struct {
	player.CallbackImpl

	// Calls counts the commands issued to the engine, keyed by name
	// ("Play", "Pause", "Stop", "SetSource").
	Calls map[string]int

	source    string
	state     player.State
	pos       float64
	dur       float64
	vol       int
	destroyed bool
}

func New() *FakeEngine {
	return &FakeEngine{Calls: make(map[string]int), vol: 100}
}

func (f *FakeEngine) Play() error {
	f.Calls["Play"]++
	if f.source != "" {
		f.setState(player.Playing)
	}
	return nil
}

func (f *FakeEngine) Pause() error {
	f.Calls["Pause"]++
	if f.state == player.Playing {
		f.setState(player.Paused)
	}
	return nil
}

func (f *FakeEngine) Stop() error {
	f.Calls["Stop"]++
	f.pos = 0
	f.setState(player.Stopped)
	return nil
}

func (f *FakeEngine) SetSource(uri string) error {
	f.Calls["SetSource"]++
	f.source = uri
	f.pos = 0
	return nil
}

func (f *FakeEngine) Source() string { return f.source }
func (f *FakeEngine) Position() float64 { return f.pos }
func (f *FakeEngine) Duration() float64 { return f.dur }
func (f *FakeEngine) State() player.State { return f.state }
func (f *FakeEngine) Volume() int { return f.vol }
func (f *FakeEngine) Destroy() { f.destroyed = true }

func (f *FakeEngine) SetVolume(vol int) error {
	vol = player.ClampVolume(vol)
	if vol != f.vol {
		f.vol = vol
		f.InvokeOnVolumeChanged(vol)
	}
	return nil
}

// Destroyed reports whether Destroy has been called.
func (f *FakeEngine) Destroyed() bool {
	return f.destroyed
}

// SetPosition moves the playback position without a state change.
func (f *FakeEngine) SetPosition(secs, duration float64) {
	f.pos = secs
	f.dur = duration
}

// EmitState forces a state transition as if the media pipeline changed state.
func (f *FakeEngine) EmitState(s player.State) {
	f.setState(s)
}

// EmitError reports an asynchronous playback error.
func (f *FakeEngine) EmitError(kind player.ErrorKind, msg string) {
	f.InvokeOnError(kind, msg)
}

func (f *FakeEngine) setState(s player.State) {
	if s == f.state {
		return
	}
	f.state = s
	f.InvokeOnStateChanged(s)
}

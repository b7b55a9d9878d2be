package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0, ClampVolume(-5))
	assert.Equal(t, 42, ClampVolume(42))
	assert.Equal(t, 100, ClampVolume(150))
}

func TestCallbackImplFansOut(t *testing.T) {
	var c CallbackImpl
	var states []State
	var vols []int
	c.OnStateChanged(func(s State) { states = append(states, s) })
	c.OnStateChanged(func(s State) { states = append(states, s) })
	c.OnVolumeChanged(func(v int) { vols = append(vols, v) })

	c.InvokeOnStateChanged(Playing)
	c.InvokeOnVolumeChanged(30)

	assert.Equal(t, []State{Playing, Playing}, states)
	assert.Equal(t, []int{30}, vols)
}

func TestInvokeWithoutSubscribers(t *testing.T) {
	var c CallbackImpl
	assert.NotPanics(t, func() {
		c.InvokeOnStateChanged(Stopped)
		c.InvokeOnError(FormatError, "x")
		c.InvokeOnVolumeChanged(1)
	})
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Playing", Playing.String())
	assert.Equal(t, "Stopped", Stopped.String())
	assert.Equal(t, "FormatError", FormatError.String())
}

package player

// Engine is the playback capability the player window drives.
// The engine owns the playback state machine; callers only issue
// commands and observe the state, error and volume notifications.
type Engine interface {
	Play() error
	Pause() error
	Stop() error

	// SetSource sets the media to play. It does not start playback.
	SetSource(uri string) error
	Source() string

	// Position and Duration are reported in seconds.
	Position() float64
	Duration() float64
	State() State

	SetVolume(int) error
	Volume() int

	Destroy()

	// Event API
	OnStateChanged(func(State))
	OnError(func(ErrorKind, string))
	OnVolumeChanged(func(int))
}

// The playback state (Stopped, Paused, or Playing).
type State int

const (
	Stopped State = iota
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	default:
		return "Stopped"
	}
}

// ErrorKind classifies an asynchronous playback error.
type ErrorKind int

const (
	NoError ErrorKind = iota
	ResourceError
	FormatError
	NetworkError
	AccessDeniedError
)

func (e ErrorKind) String() string {
	switch e {
	case ResourceError:
		return "ResourceError"
	case FormatError:
		return "FormatError"
	case NetworkError:
		return "NetworkError"
	case AccessDeniedError:
		return "AccessDeniedError"
	default:
		return "NoError"
	}
}

// ClampVolume limits vol to the 0-100 range.
func ClampVolume(vol int) int {
	if vol > 100 {
		return 100
	} else if vol < 0 {
		return 0
	}
	return vol
}

// CallbackImpl implements the Event API of Engine.
// Any number of subscribers may be registered for each event.
type CallbackImpl struct {
	onStateChanged  []func(State)
	onError         []func(ErrorKind, string)
	onVolumeChanged []func(int)
}

// Registers a callback which is invoked whenever the playback state changes.
func (c *CallbackImpl) OnStateChanged(cb func(State)) {
	c.onStateChanged = append(c.onStateChanged, cb)
}

// Registers a callback which is invoked when the engine reports a playback error.
func (c *CallbackImpl) OnError(cb func(ErrorKind, string)) {
	c.onError = append(c.onError, cb)
}

// Registers a callback which is invoked when the volume changes,
// including changes made through SetVolume.
func (c *CallbackImpl) OnVolumeChanged(cb func(int)) {
	c.onVolumeChanged = append(c.onVolumeChanged, cb)
}

func (c *CallbackImpl) InvokeOnStateChanged(s State) {
	for _, cb := range c.onStateChanged {
		cb(s)
	}
}

func (c *CallbackImpl) InvokeOnError(kind ErrorKind, msg string) {
	for _, cb := range c.onError {
		cb(kind, msg)
	}
}

func (c *CallbackImpl) InvokeOnVolumeChanged(vol int) {
	for _, cb := range c.onVolumeChanged {
		cb(vol)
	}
}

package mpv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/supersonic-app/go-mpv"
	"github.com/torriplayer/torriplayer/backend/player"
)

// Error returned by many Player functions if called before the player has not been initialized.
var ErrUnitialized error = errors.New("mpv player uninitialized")

// ErrNoSource is returned by Play when no media source has been set.
var ErrNoSource = errors.New("no media source set")

// Information about a specific audio device.
// Returned by ListAudioDevices.
type AudioDevice struct {
	// The name of the audio device.
	// This is the string to pass to SetAudioDevice.
	Name string

	// The description of the audio device.
	// This is the friendly string that should be used in UIs.
	Description string
}

// Options applied when the mpv instance is created.
type Options struct {
	// Application name reported to the system audio API.
	ClientName string

	// Title of the video output window.
	WindowTitle string

	// Size limit of the in-memory demuxer cache.
	InMemoryCacheSizeMB int

	// Value for the mpv hwdec option ("no", "auto-safe", ...).
	HardwareDecoding string
}

const (
	observeVolume = 1
	observePause  = 2
)

var _ player.Engine = (*Player)(nil)

// Player encapsulates the mpv instance and provides functions
// to control it and to check its status.
type Player struct {
	player.CallbackImpl

	mpv         *mpv.Mpv
	initialized bool

	mu     sync.Mutex
	vol    int
	source string
	loaded string // source of the last loadfile
	state  player.State
	load   player.LoadTracker

	bgCancel context.CancelFunc
}

// Returns a new player.
// Must call Init on the player before it is ready for playback.
func New() *Player {
	return &Player{vol: -1} // use 100 in Init
}

// Initializes the Player and makes it ready for playback.
// Most Player functions will return ErrUnitialized if called before Init.
func (p *Player) Init(opts Options) error {
	if !p.initialized {
		m := mpv.Create()

		m.SetOptionString("idle", "yes")
		m.SetOptionString("keep-open", "no")
		m.SetOptionString("force-window", "no")
		m.SetOptionString("terminal", "no")
		m.SetOptionString("input-default-bindings", "yes")
		m.SetOptionString("input-vo-keyboard", "yes")

		if opts.WindowTitle != "" {
			m.SetOptionString("title", "${media-title} - "+opts.WindowTitle)
		}
		if opts.HardwareDecoding != "" {
			m.SetOptionString("hwdec", opts.HardwareDecoding)
		}

		// limit in-memory cache size
		if opts.InMemoryCacheSizeMB > 0 {
			maxBackMB := opts.InMemoryCacheSizeMB / 3
			maxForwardMB := maxBackMB + maxBackMB
			m.SetOptionString("demuxer-max-bytes", fmt.Sprintf("%dMiB", maxForwardMB))
			m.SetOptionString("demuxer-max-back-bytes", fmt.Sprintf("%dMiB", maxBackMB))
		}

		if p.vol < 0 {
			p.vol = 100
		}
		m.SetOption("volume", mpv.FORMAT_INT64, p.vol)

		if opts.ClientName != "" {
			m.SetOptionString("audio-client-name", opts.ClientName)
		}

		// keys pressed in the video window change these behind our back
		m.ObserveProperty(observeVolume, "volume", mpv.FORMAT_INT64)
		m.ObserveProperty(observePause, "pause", mpv.FORMAT_FLAG)

		if err := m.Initialize(); err != nil {
			return fmt.Errorf("error initializing mpv: %w", err)
		}

		p.mpv = m
	}
	ctx, cancel := context.WithCancel(context.Background())
	go p.eventHandler(ctx)
	p.bgCancel = cancel
	p.initialized = true
	return nil
}

// Sets the media source. Playback of the new source begins with the
// next call to Play, which replaces whatever file is currently loaded.
func (p *Player) SetSource(uri string) error {
	if !p.initialized {
		return ErrUnitialized
	}
	p.mu.Lock()
	p.source = uri
	p.mu.Unlock()
	return nil
}

// Returns the current media source, or the empty string.
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Starts playback of the current source, or resumes it if paused.
func (p *Player) Play() error {
	if !p.initialized {
		return ErrUnitialized
	}
	p.mu.Lock()
	state, source, loaded := p.state, p.source, p.loaded
	p.mu.Unlock()

	if state != player.Stopped && source == loaded {
		if state == player.Paused {
			if err := p.setPaused(false); err != nil {
				return err
			}
			p.setState(player.Playing)
		}
		return nil
	}

	if source == "" {
		return ErrNoSource
	}
	p.mu.Lock()
	p.load.LoadRequested()
	p.loaded = source
	p.mu.Unlock()
	if err := p.mpv.Command([]string{"loadfile", source, "replace"}); err != nil {
		p.mu.Lock()
		p.load.StopRequested()
		p.loaded = ""
		p.mu.Unlock()
		return err
	}
	// a previous pause survives loadfile
	if err := p.setPaused(false); err != nil {
		return err
	}
	p.setState(player.Playing)
	return nil
}

// Pause playback and update the player state
func (p *Player) Pause() error {
	if !p.initialized {
		return ErrUnitialized
	}
	if p.State() != player.Playing {
		return nil
	}
	err := p.setPaused(true)
	if err == nil {
		p.setState(player.Paused)
	}
	return err
}

// Stops playback and unloads the current file.
// The source is kept so that Play starts it again from the beginning.
func (p *Player) Stop() error {
	if !p.initialized {
		return ErrUnitialized
	}
	p.mu.Lock()
	p.load.StopRequested()
	p.mu.Unlock()

	err := p.mpv.Command([]string{"stop"})
	if err == nil {
		// if player was paused, stop command actually doesn't clear pause state
		err = p.setPaused(false)
	}
	if err == nil {
		p.setState(player.Stopped)
	}
	return err
}

// Get the current playback state.
func (p *Player) State() player.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Get the current playback position in seconds.
func (p *Player) Position() float64 {
	if !p.initialized || p.State() == player.Stopped {
		return 0
	}
	pos, err := p.mpv.GetProperty("playback-time", mpv.FORMAT_DOUBLE)
	if err != nil || pos == nil {
		return 0
	}
	return pos.(float64)
}

// Get the duration of the loaded media in seconds.
func (p *Player) Duration() float64 {
	if !p.initialized || p.State() == player.Stopped {
		return 0
	}
	dur, err := p.mpv.GetProperty("duration", mpv.FORMAT_DOUBLE)
	if err != nil || dur == nil {
		return 0
	}
	return dur.(float64)
}

// Sets the volume of the player (0-100).
// Unlike most Player functions, SetVolume can be called before Init,
// to set the initial volume of the player on startup.
func (p *Player) SetVolume(vol int) error {
	vol = player.ClampVolume(vol)
	if p.initialized {
		if err := p.mpv.SetProperty("volume", mpv.FORMAT_INT64, vol); err != nil {
			return err
		}
	}
	p.updateVolume(vol)
	return nil
}

// Gets the current volume of the player.
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vol
}

// List available audio devices.
func (p *Player) ListAudioDevices() ([]AudioDevice, error) {
	if !p.initialized {
		return nil, ErrUnitialized
	}
	n, err := p.mpv.GetProperty("audio-device-list", mpv.FORMAT_NODE)
	if err != nil {
		return nil, err
	}
	nodeArr := n.(*mpv.Node).Data.([]*mpv.Node)

	devices := make([]AudioDevice, len(nodeArr))
	for i, node := range nodeArr {
		dev := node.Data.(map[string]*mpv.Node)
		name := dev["name"].Data.(string)
		desc := dev["description"].Data.(string)
		devices[i] = AudioDevice{Name: name, Description: desc}
	}
	return devices, nil
}

func (p *Player) SetAudioDevice(deviceName string) error {
	if !p.initialized {
		return ErrUnitialized
	}
	return p.mpv.SetPropertyString("audio-device", deviceName)
}

// Lists the container formats (libavformat demuxer names) mpv can open.
func (p *Player) SupportedDemuxers() ([]string, error) {
	if !p.initialized {
		return nil, ErrUnitialized
	}
	n, err := p.mpv.GetProperty("demuxer-lavf-list", mpv.FORMAT_NODE)
	if err != nil {
		return nil, err
	}
	nodeArr, ok := n.(*mpv.Node).Data.([]*mpv.Node)
	if !ok {
		return nil, errors.New("mpv did not report a demuxer list")
	}
	demuxers := make([]string, 0, len(nodeArr))
	for _, node := range nodeArr {
		if s, ok := node.Data.(string); ok {
			demuxers = append(demuxers, s)
		}
	}
	return demuxers, nil
}

// Destroy the player.
func (p *Player) Destroy() {
	if p.bgCancel != nil {
		p.bgCancel()
	}
	if p.initialized {
		p.mpv.Command([]string{"stop"})
		p.mpv.TerminateDestroy()
		p.initialized = false
	}
}

func (p *Player) setPaused(paused bool) error {
	return p.mpv.SetProperty("pause", mpv.FORMAT_FLAG, paused)
}

// sets the state and invokes callbacks, if triggered
func (p *Player) setState(s player.State) {
	p.mu.Lock()
	changed := p.state != s
	p.state = s
	p.mu.Unlock()
	if changed {
		p.InvokeOnStateChanged(s)
	}
}

func (p *Player) updateVolume(vol int) {
	p.mu.Lock()
	changed := p.vol != vol
	p.vol = vol
	p.mu.Unlock()
	if changed {
		p.InvokeOnVolumeChanged(vol)
	}
}

func (p *Player) eventHandler(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			e := p.mpv.WaitEvent(1 /*timeout seconds*/)
			switch e.Event_Id {
			case mpv.EVENT_START_FILE:
				p.mu.Lock()
				p.load.FileStarted()
				p.mu.Unlock()
			case mpv.EVENT_FILE_LOADED:
				p.mu.Lock()
				p.load.FileLoaded()
				p.mu.Unlock()
			case mpv.EVENT_END_FILE:
				p.mu.Lock()
				failed := p.load.FileEnded()
				source := p.loaded
				p.mu.Unlock()
				if failed {
					kind, msg := player.ClassifyLoadFailure(source)
					log.Printf("mpv: %s (%s)", msg, kind)
					p.InvokeOnError(kind, msg)
				}
			case mpv.EVENT_IDLE:
				p.mu.Lock()
				stopped := p.load.Idle()
				p.mu.Unlock()
				if stopped {
					p.setState(player.Stopped)
				}
			case mpv.EVENT_PROPERTY_CHANGE:
				switch e.Reply_Userdata {
				case observeVolume:
					p.syncVolume()
				case observePause:
					p.syncPause()
				}
			}
		}
	}
}

func (p *Player) syncVolume() {
	if v, err := p.mpv.GetProperty("volume", mpv.FORMAT_INT64); err == nil && v != nil {
		p.updateVolume(player.ClampVolume(int(v.(int64))))
	}
}

func (p *Player) syncPause() {
	paused, err := p.mpv.GetProperty("pause", mpv.FORMAT_FLAG)
	if err != nil || paused == nil {
		return
	}
	switch state := p.State(); {
	case paused.(bool) && state == player.Playing:
		p.setState(player.Paused)
	case !paused.(bool) && state == player.Paused:
		p.setState(player.Playing)
	}
}

package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// PlayerControls is the bottom toolbar: open, transport buttons and volume.
type PlayerControls struct {
	widget.BaseWidget

	VolumeControl *VolumeControl

	open  *ttwidget.Button
	play  *ttwidget.Button
	prev  *ttwidget.Button
	pause *ttwidget.Button
	next  *ttwidget.Button
	stop  *ttwidget.Button

	container *fyne.Container
}

var _ fyne.Widget = (*PlayerControls)(nil)

// NewPlayerControls sets up the transport buttons and volume slider.
// Pause, stop and previous start disabled.
func NewPlayerControls(initialVolume int, volumeWidth float32) *PlayerControls {
	pc := &PlayerControls{}
	pc.ExtendBaseWidget(pc)

	pc.open = newToolButton(theme.FolderOpenIcon(), lang.L("Open"))
	pc.play = newToolButton(theme.MediaPlayIcon(), lang.L("Play"))
	pc.prev = newToolButton(theme.MediaSkipPreviousIcon(), lang.L("Previous"))
	pc.pause = newToolButton(theme.MediaPauseIcon(), lang.L("Pause"))
	pc.next = newToolButton(theme.MediaSkipNextIcon(), lang.L("Next"))
	pc.stop = newToolButton(theme.MediaStopIcon(), lang.L("Stop"))
	pc.pause.Disable()
	pc.stop.Disable()
	pc.prev.Disable()

	pc.VolumeControl = NewVolumeControl(initialVolume, volumeWidth)

	buttons := container.NewHBox(pc.open, pc.play, pc.prev, pc.pause, pc.next, pc.stop)
	pc.container = container.NewHBox(buttons, layout.NewSpacer(), pc.VolumeControl)
	return pc
}

func newToolButton(icon fyne.Resource, toolTip string) *ttwidget.Button {
	b := ttwidget.NewButtonWithIcon("", icon, func() {})
	b.Importance = widget.LowImportance
	b.SetToolTip(toolTip)
	return b
}

func (pc *PlayerControls) OnOpen(f func())     { pc.open.OnTapped = f }
func (pc *PlayerControls) OnPlay(f func())     { pc.play.OnTapped = f }
func (pc *PlayerControls) OnPrevious(f func()) { pc.prev.OnTapped = f }
func (pc *PlayerControls) OnPause(f func())    { pc.pause.OnTapped = f }
func (pc *PlayerControls) OnNext(f func())     { pc.next.OnTapped = f }
func (pc *PlayerControls) OnStop(f func())     { pc.stop.OnTapped = f }

func (pc *PlayerControls) SetPauseEnabled(b bool)    { setEnabled(pc.pause, b) }
func (pc *PlayerControls) SetStopEnabled(b bool)     { setEnabled(pc.stop, b) }
func (pc *PlayerControls) SetPreviousEnabled(b bool) { setEnabled(pc.prev, b) }

func (pc *PlayerControls) PauseEnabled() bool    { return !pc.pause.Disabled() }
func (pc *PlayerControls) StopEnabled() bool     { return !pc.stop.Disabled() }
func (pc *PlayerControls) PreviousEnabled() bool { return !pc.prev.Disabled() }

func setEnabled(d fyne.Disableable, enabled bool) {
	if enabled {
		d.Enable()
	} else {
		d.Disable()
	}
}

func (pc *PlayerControls) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.container)
}

func (pc *PlayerControls) StopButton() fyne.Tappable { return pc.stop }

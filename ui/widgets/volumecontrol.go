package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

type volumeSlider struct {
	ttwidget.Slider

	Width float32
}

func NewVolumeSlider(width float32) *volumeSlider {
	v := &volumeSlider{
		Slider: ttwidget.Slider{
			Slider: widget.Slider{
				Min:         0,
				Max:         100,
				Step:        1,
				Orientation: widget.Horizontal,
				Value:       100,
			},
		},
		Width: width,
	}
	v.SetToolTip(lang.L("Volume"))
	v.ExtendBaseWidget(v)
	return v
}

func (v *volumeSlider) MinSize() fyne.Size {
	h := v.Slider.MinSize().Height
	return fyne.NewSize(v.Width, h)
}

// VolumeControl is a speaker icon, which toggles mute, and a 0-100 slider.
type VolumeControl struct {
	widget.BaseWidget

	icon   *TappableIcon
	slider *volumeSlider

	// Called when the user changes the volume.
	OnVolumeChanged func(int)

	muted   bool
	lastVol int

	container *fyne.Container
}

func NewVolumeControl(initialVol int, sliderWidth float32) *VolumeControl {
	v := &VolumeControl{}
	v.ExtendBaseWidget(v)
	v.icon = NewTappableIcon(theme.VolumeUpIcon())
	v.icon.OnTapped = v.toggleMute
	v.slider = NewVolumeSlider(sliderWidth)
	v.lastVol = initialVol
	v.slider.Value = float64(initialVol)
	v.slider.OnChanged = v.onChanged
	v.updateIconForVolume(initialVol)
	v.container = container.NewHBox(container.NewCenter(v.icon), v.slider)
	return v
}

func (v *VolumeControl) onChanged(volume float64) {
	vol := int(volume)
	v.lastVol = vol
	v.muted = false
	v.updateIconForVolume(vol)
	if v.OnVolumeChanged != nil {
		v.OnVolumeChanged(vol)
	}
}

func (v *VolumeControl) toggleMute() {
	vol := v.lastVol
	if !v.muted {
		v.lastVol = int(v.slider.Value)
		vol = 0
	}
	v.muted = !v.muted
	v.SetVolume(vol)
	if v.OnVolumeChanged != nil {
		v.OnVolumeChanged(vol)
	}
}

func (v *VolumeControl) CreateRenderer() fyne.WidgetRenderer {
	v.ExtendBaseWidget(v)
	return widget.NewSimpleRenderer(v.container)
}

// SetVolume moves the slider without calling OnVolumeChanged.
func (v *VolumeControl) SetVolume(vol int) {
	v.slider.Value = float64(vol)
	v.slider.Refresh()
	v.updateIconForVolume(vol)
}

func (v *VolumeControl) Volume() int {
	return int(v.slider.Value)
}

func (v *VolumeControl) updateIconForVolume(vol int) {
	if vol <= 0 {
		v.icon.Resource = theme.VolumeMuteIcon()
	} else if vol < 50 {
		v.icon.Resource = theme.VolumeDownIcon()
	} else {
		v.icon.Resource = theme.VolumeUpIcon()
	}
	v.icon.Refresh()
}

package widgets

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/torriplayer/torriplayer/ui/util"
)

// VideoSurface is the central area of the main window. Video frames are
// drawn by the engine's own output window; the surface shows what is
// loaded and how far playback has progressed.
type VideoSurface struct {
	widget.BaseWidget

	background *canvas.Rectangle
	icon       *widget.Icon
	title      *widget.Label
	time       *widget.Label

	container *fyne.Container
}

func NewVideoSurface() *VideoSurface {
	v := &VideoSurface{
		background: canvas.NewRectangle(theme.Color(theme.ColorNameShadow)),
		icon:       widget.NewIcon(theme.MediaVideoIcon()),
		title:      widget.NewLabel(lang.L("No media loaded")),
		time:       widget.NewLabel(""),
	}
	v.ExtendBaseWidget(v)
	v.title.Alignment = fyne.TextAlignCenter
	v.title.Truncation = fyne.TextTruncateEllipsis
	v.time.Alignment = fyne.TextAlignCenter
	v.container = container.NewStack(v.background,
		container.NewCenter(container.NewVBox(v.icon, v.title, v.time)))
	return v
}

// SetMedia shows the name of the loaded media, or a placeholder if name is empty.
func (v *VideoSurface) SetMedia(name string) {
	if name == "" {
		name = lang.L("No media loaded")
		v.time.SetText("")
	}
	v.title.SetText(name)
}

func (v *VideoSurface) Title() string {
	return v.title.Text
}

// UpdatePlayTime shows the position as "cur / total", or just the
// position for streams of unknown length.
func (v *VideoSurface) UpdatePlayTime(curTime, totalTime float64) {
	t := util.SecondsToTimeString(curTime)
	if totalTime > 0 {
		t = fmt.Sprintf("%s / %s", t, util.SecondsToTimeString(totalTime))
	}
	if t != v.time.Text {
		v.time.SetText(t)
	}
}

func (v *VideoSurface) PlayTime() string {
	return v.time.Text
}

func (v *VideoSurface) MinSize() fyne.Size {
	return fyne.NewSize(320, 180)
}

func (v *VideoSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

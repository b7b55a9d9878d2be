package os

import (
	"log"

	"fyne.io/fyne/v2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// PrimaryWorkArea returns the size of the primary monitor minus
// panels and docks. Must be called from the main goroutine before
// the Fyne app starts running.
func PrimaryWorkArea() (fyne.Size, bool) {
	if err := glfw.Init(); err != nil {
		log.Printf("failed to query screen size: %v", err)
		return fyne.Size{}, false
	}
	defer glfw.Terminate()

	mon := glfw.GetPrimaryMonitor()
	if mon == nil {
		return fyne.Size{}, false
	}
	_, _, w, h := mon.GetWorkarea()
	if w <= 0 || h <= 0 {
		return fyne.Size{}, false
	}
	return fyne.NewSize(float32(w), float32(h)), true
}

// Geometry is the window layout derived from the screen work area.
type Geometry struct {
	WindowSize        fyne.Size
	VolumeSliderWidth float32
}

// Used when the work area cannot be queried.
var fallbackWorkArea = fyne.NewSize(1600, 900)

// GeometryFor sizes the window to half the work area in each dimension
// and the volume slider to a tenth of the work area width.
func GeometryFor(workArea fyne.Size, ok bool) Geometry {
	if !ok {
		workArea = fallbackWorkArea
	}
	return Geometry{
		WindowSize:        fyne.NewSize(workArea.Width/2, workArea.Height/2),
		VolumeSliderWidth: workArea.Width / 10,
	}
}

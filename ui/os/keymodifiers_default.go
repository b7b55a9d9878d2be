//go:build !darwin

package os

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	ControlModifier = fyne.KeyModifierControl
)

var (
	OpenShortcut = &desktop.CustomShortcut{Modifier: ControlModifier, KeyName: fyne.KeyO}
	QuitShortcut = &desktop.CustomShortcut{Modifier: ControlModifier, KeyName: fyne.KeyQ}
)

package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/torriplayer/torriplayer/backend"
	"github.com/torriplayer/torriplayer/backend/player"
	"github.com/torriplayer/torriplayer/ui/controller"
	"github.com/torriplayer/torriplayer/ui/os"
	"github.com/torriplayer/torriplayer/ui/util"
	"github.com/torriplayer/torriplayer/ui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
)

const playTimeUpdateInterval = 500 * time.Millisecond

type MainWindow struct {
	Window fyne.Window

	Controller   *controller.Controller
	Controls     *widgets.PlayerControls
	StatusBar    *widgets.StatusBar
	VideoSurface *widgets.VideoSurface

	engine         player.Engine
	displayAppName string

	mainMenu  *fyne.MainMenu
	pauseItem *fyne.MenuItem
	stopItem  *fyne.MenuItem
	prevItem  *fyne.MenuItem

	stopUpdater chan struct{}
}

func NewMainWindow(fyneApp fyne.App, displayAppName string, cfg *backend.Config, engine player.Engine, formats controller.MIMETypeSource, geometry os.Geometry) *MainWindow {
	m := &MainWindow{
		Window:         fyneApp.NewWindow(displayAppName),
		engine:         engine,
		displayAppName: displayAppName,
		stopUpdater:    make(chan struct{}),
	}

	m.Controls = widgets.NewPlayerControls(engine.Volume(), geometry.VolumeSliderWidth)
	m.StatusBar = widgets.NewStatusBar()
	m.VideoSurface = widgets.NewVideoSurface()
	m.Controller = &controller.Controller{
		Engine:        engine,
		Formats:       formats,
		Chooser:       &fileChooser{window: m.Window},
		Controls:      m,
		Status:        m.StatusBar,
		ErrorLog:      log.Default(),
		StatusTimeout: time.Duration(cfg.Application.StatusMessageSeconds) * time.Second,
	}

	m.Controls.OnOpen(m.Controller.Open)
	m.Controls.OnPlay(func() { _ = m.Controller.Play() })
	m.Controls.OnPause(func() { _ = m.Controller.Pause() })
	m.Controls.OnStop(func() { _ = m.Controller.Stop() })
	m.Controls.OnPrevious(m.Controller.Previous)
	m.Controls.OnNext(m.Controller.Next)
	m.Controls.VolumeControl.OnVolumeChanged = func(v int) { _ = m.Controller.SetVolume(v) }

	m.setupMainMenu()
	m.addShortcuts()

	engine.OnStateChanged(func(s player.State) {
		fyne.Do(func() { m.onStateChanged(s) })
	})
	m.Controller.Connect(fyne.Do)

	bottom := container.NewVBox(widget.NewSeparator(), m.Controls, m.StatusBar)
	content := container.NewBorder(nil, bottom, nil, nil, m.VideoSurface)
	m.Window.SetContent(fynetooltip.AddWindowToolTipLayer(content, m.Window.Canvas()))
	m.Window.Resize(geometry.WindowSize)
	m.Window.SetCloseIntercept(m.Quit)

	go m.runPlayTimeUpdater()
	return m
}

func (m *MainWindow) setupMainMenu() {
	openItem := fyne.NewMenuItem(lang.L("Open")+"...", m.Controller.Open)
	openItem.Shortcut = os.OpenShortcut
	exitItem := fyne.NewMenuItem(lang.L("Exit"), m.Quit)
	exitItem.IsQuit = true
	if os.QuitShortcut != nil {
		exitItem.Shortcut = os.QuitShortcut
	}

	playItem := fyne.NewMenuItem(lang.L("Play"), func() { _ = m.Controller.Play() })
	m.prevItem = fyne.NewMenuItem(lang.L("Previous"), m.Controller.Previous)
	m.pauseItem = fyne.NewMenuItem(lang.L("Pause"), func() { _ = m.Controller.Pause() })
	nextItem := fyne.NewMenuItem(lang.L("Next"), m.Controller.Next)
	m.stopItem = fyne.NewMenuItem(lang.L("Stop"), func() { _ = m.Controller.Stop() })
	m.prevItem.Disabled = true
	m.pauseItem.Disabled = true
	m.stopItem.Disabled = true

	m.mainMenu = fyne.NewMainMenu(
		fyne.NewMenu(lang.L("File"), openItem, fyne.NewMenuItemSeparator(), exitItem),
		fyne.NewMenu(lang.L("Play"), playItem, m.prevItem, m.pauseItem, nextItem, m.stopItem),
	)
	m.Window.SetMainMenu(m.mainMenu)
}

func (m *MainWindow) addShortcuts() {
	m.Canvas().AddShortcut(os.OpenShortcut, func(_ fyne.Shortcut) {
		m.Controller.Open()
	})
	if os.QuitShortcut != nil {
		m.Canvas().AddShortcut(os.QuitShortcut, func(_ fyne.Shortcut) {
			m.Quit()
		})
	}
	m.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name != fyne.KeySpace {
			return
		}
		if m.engine.State() == player.Playing {
			_ = m.Controller.Pause()
		} else {
			_ = m.Controller.Play()
		}
	})
}

// controller.Controls implementation: menu items mirror the toolbar buttons.

func (m *MainWindow) SetPauseEnabled(b bool) {
	m.Controls.SetPauseEnabled(b)
	m.setMenuItemEnabled(m.pauseItem, b)
}

func (m *MainWindow) SetStopEnabled(b bool) {
	m.Controls.SetStopEnabled(b)
	m.setMenuItemEnabled(m.stopItem, b)
}

func (m *MainWindow) SetPreviousEnabled(b bool) {
	m.Controls.SetPreviousEnabled(b)
	m.setMenuItemEnabled(m.prevItem, b)
}

func (m *MainWindow) SetVolume(vol int) {
	m.Controls.VolumeControl.SetVolume(vol)
}

func (m *MainWindow) setMenuItemEnabled(item *fyne.MenuItem, enabled bool) {
	if item.Disabled == !enabled {
		return
	}
	item.Disabled = !enabled
	m.mainMenu.Refresh()
}

func (m *MainWindow) onStateChanged(s player.State) {
	if s == player.Stopped {
		m.VideoSurface.UpdatePlayTime(0, m.engine.Duration())
		m.Window.SetTitle(m.displayAppName)
		return
	}
	name := util.MediaDisplayName(m.engine.Source())
	m.VideoSurface.SetMedia(name)
	m.Window.SetTitle(fmt.Sprintf("%s · %s", name, m.displayAppName))
}

func (m *MainWindow) runPlayTimeUpdater() {
	t := time.NewTicker(playTimeUpdateInterval)
	defer t.Stop()
	for {
		select {
		case <-m.stopUpdater:
			return
		case <-t.C:
			if m.engine.State() == player.Playing {
				fyne.Do(m.updatePlayTime)
			}
		}
	}
}

func (m *MainWindow) updatePlayTime() {
	m.VideoSurface.UpdatePlayTime(m.engine.Position(), m.engine.Duration())
	m.SetPreviousEnabled(m.engine.Position() > 0)
}

func (m *MainWindow) Show() {
	m.Window.Show()
	m.Window.RequestFocus()
}

func (m *MainWindow) Canvas() fyne.Canvas {
	return m.Window.Canvas()
}

// Quit stops playback and exits the app.
func (m *MainWindow) Quit() {
	_ = m.Controller.EnsureStopped()
	select {
	case <-m.stopUpdater:
	default:
		close(m.stopUpdater)
	}
	fyne.CurrentApp().Quit()
}

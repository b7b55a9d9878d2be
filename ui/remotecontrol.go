package ui

import (
	"fyne.io/fyne/v2"

	"github.com/torriplayer/torriplayer/backend/ipc"
)

var (
	_ ipc.PlaybackHandler = (*RemoteControl)(nil)
	_ ipc.WindowHandler   = (*RemoteControl)(nil)
)

// RemoteControl runs commands received from other processes
// on the UI goroutine.
type RemoteControl struct {
	m *MainWindow
}

func (m *MainWindow) RemoteControl() *RemoteControl {
	return &RemoteControl{m: m}
}

func (r *RemoteControl) Play() error {
	return r.doWithErr(r.m.Controller.Play)
}

func (r *RemoteControl) Pause() error {
	return r.doWithErr(r.m.Controller.Pause)
}

func (r *RemoteControl) Stop() error {
	return r.doWithErr(r.m.Controller.Stop)
}

func (r *RemoteControl) OpenURI(uri string) error {
	return r.doWithErr(func() error { return r.m.Controller.OpenURI(uri) })
}

func (r *RemoteControl) Volume() int {
	return r.m.engine.Volume()
}

func (r *RemoteControl) SetVolume(v int) error {
	return r.doWithErr(func() error { return r.m.Controller.SetVolume(v) })
}

func (r *RemoteControl) Show() {
	fyne.Do(r.m.Show)
}

func (r *RemoteControl) Quit() {
	fyne.Do(r.m.Quit)
}

func (r *RemoteControl) doWithErr(f func() error) error {
	var err error
	fyne.DoAndWait(func() { err = f() })
	return err
}

package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/torriplayer/torriplayer/ui/controller"
)

var _ controller.FileChooser = (*fileChooser)(nil)

type fileChooser struct {
	window fyne.Window
}

// ChooseFile shows the Fyne file open dialog filtered to mimeTypes.
// Local files are reported as plain paths.
func (f *fileChooser) ChooseFile(mimeTypes []string, startDir string, onChosen func(string)) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			log.Printf("error choosing file: %v", err)
			onChosen("")
			return
		}
		if r == nil {
			onChosen("")
			return
		}
		u := r.URI()
		r.Close()
		onChosen(uriToSource(u))
	}, f.window)
	if len(mimeTypes) > 0 {
		d.SetFilter(storage.NewMimeTypeFileFilter(mimeTypes))
	}
	if startDir != "" {
		if l, err := storage.ListerForURI(storage.NewFileURI(startDir)); err == nil {
			d.SetLocation(l)
		}
	}
	if s := f.window.Canvas().Size(); s.Width > 0 {
		d.Resize(fyne.NewSize(s.Width*0.9, s.Height*0.9))
	}
	d.Show()
}

func uriToSource(u fyne.URI) string {
	if u.Scheme() == "file" {
		return u.Path()
	}
	return u.String()
}

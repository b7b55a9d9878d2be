package widgets

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows a single line of text that clears itself after a timeout.
type StatusBar struct {
	widget.BaseWidget

	label *widget.Label

	mu      sync.Mutex
	message string
	gen     int
}

func NewStatusBar() *StatusBar {
	s := &StatusBar{label: widget.NewLabel("")}
	s.label.Truncation = fyne.TextTruncateEllipsis
	s.ExtendBaseWidget(s)
	return s
}

// ShowMessage replaces the current message. It is cleared after timeout
// unless another message has been shown in the meantime.
func (s *StatusBar) ShowMessage(msg string, timeout time.Duration) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.message = msg
	s.mu.Unlock()
	s.label.SetText(msg)

	if timeout <= 0 {
		return
	}
	time.AfterFunc(timeout, func() {
		fyne.Do(func() { s.clearIfCurrent(gen) })
	})
}

func (s *StatusBar) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *StatusBar) clearIfCurrent(gen int) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.message = ""
	s.mu.Unlock()
	s.label.SetText("")
}

func (s *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.label)
}

package ui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"TurtleBoard/internal/playback"
)

const stepIntroText = "Step-by-step mode runs one command at a time.\n" +
	"Press Enter or \"Next step\" to move on, or switch the speed back to Normal to let it run."

// stepIntro shows the step-mode instructions as a modal dialog and blocks
// the playback pass until the user dismisses it.
type stepIntro struct {
	win fyne.Window
	// dlg is only touched on the UI goroutine.
	dlg dialog.Dialog
}

var _ playback.StepIntro = (*stepIntro)(nil)

func (s *stepIntro) Acknowledge(ctx context.Context) error {
	done := make(chan struct{})
	var once sync.Once
	fyne.Do(func() {
		d := dialog.NewCustom("Step-by-Step Mode", "Got it", widget.NewLabel(stepIntroText), s.win)
		d.SetOnClosed(func() {
			s.dlg = nil
			once.Do(func() { close(done) })
		})
		s.dlg = d
		d.Show()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		fyne.Do(func() { s.dismiss() })
		return ctx.Err()
	}
}

// dismiss closes the dialog if it is showing and reports whether it was.
func (s *stepIntro) dismiss() bool {
	if s.dlg == nil {
		return false
	}
	s.dlg.Hide()
	return true
}

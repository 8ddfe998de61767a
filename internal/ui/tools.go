package ui

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TurtleBoard/internal/playback"
)

// speedControl is the three-position speed slider. The selected position
// is kept in an atomic so the playback goroutine can read it at any time.
type speedControl struct {
	value  atomic.Int32
	slider *widget.Slider
	label  *widget.Label
}

func newSpeedControl() *speedControl {
	s := &speedControl{
		slider: widget.NewSlider(0, 2),
		label:  widget.NewLabel(""),
	}
	s.slider.Step = 1
	s.slider.OnChanged = func(v float64) { s.set(int(v)) }
	s.slider.SetValue(1)
	s.set(1)
	return s
}

func (s *speedControl) set(v int) {
	s.value.Store(int32(v))
	s.label.SetText(playback.SpeedFromSlider(v).String())
}

// Mode is a playback.SpeedFunc.
func (s *speedControl) Mode() playback.SpeedMode {
	return playback.SpeedFromSlider(int(s.value.Load()))
}

type toolbarActions struct {
	Run       func()
	Clear     func()
	NextStep  func()
	ExportPNG func()
	ExportPDF func()
	SetDark   func(bool)
	Example   func(name string)
}

type toolbar struct {
	run      *widget.Button
	clear    *widget.Button
	next     *widget.Button
	dark     *widget.Check
	examples *widget.Select
	speed    *speedControl
}

func newToolbar(a toolbarActions, dark bool) *toolbar {
	t := &toolbar{
		run:      widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), a.Run),
		clear:    widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), a.Clear),
		next:     widget.NewButtonWithIcon("Next step", theme.MediaSkipNextIcon(), a.NextStep),
		dark:     widget.NewCheck("Dark", nil),
		examples: widget.NewSelect(exampleNames(), a.Example),
		speed:    newSpeedControl(),
	}
	t.examples.PlaceHolder = "Examples"
	t.run.Importance = widget.HighImportance
	t.dark.SetChecked(dark)
	t.dark.OnChanged = a.SetDark
	return t
}

// setBusy disables the buttons that must not be used during a pass.
func (t *toolbar) setBusy(busy bool) {
	if busy {
		t.run.Disable()
		t.clear.Disable()
		return
	}
	t.run.Enable()
	t.clear.Enable()
}

func (t *toolbar) object(a toolbarActions) fyne.CanvasObject {
	export := widget.NewToolbar(
		widget.NewToolbarAction(theme.FileImageIcon(), a.ExportPNG),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.ExportPDF),
	)
	slider := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.speed.slider)

	return container.NewHBox(
		t.run,
		t.clear,
		widget.NewSeparator(),
		widget.NewLabel("Speed:"),
		slider,
		t.speed.label,
		t.next,
		widget.NewSeparator(),
		export,
		t.examples,
		layout.NewSpacer(),
		t.dark,
	)
}

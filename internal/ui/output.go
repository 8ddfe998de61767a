package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// OutputLog is the text panel under the canvas. Its methods may be called
// from any goroutine.
type OutputLog struct {
	text   *widget.RichText
	scroll *container.Scroll
}

func NewOutputLog() *OutputLog {
	o := &OutputLog{text: widget.NewRichText()}
	o.text.Wrapping = fyne.TextWrapWord
	o.scroll = container.NewVScroll(o.text)
	o.scroll.SetMinSize(fyne.NewSize(0, 120))
	return o
}

func (o *OutputLog) Object() fyne.CanvasObject { return o.scroll }

func (o *OutputLog) Info(msg string) {
	log.Printf("[UI] %s", msg)
	o.append(&widget.TextSegment{Text: msg, Style: widget.RichTextStyleParagraph})
}

func (o *OutputLog) Error(msg string) {
	log.Printf("[UI] error: %s", msg)
	o.append(&widget.TextSegment{Text: msg, Style: widget.RichTextStyle{
		ColorName: theme.ColorNameError,
		TextStyle: fyne.TextStyle{Bold: true},
	}})
}

func (o *OutputLog) Reset() {
	fyne.Do(func() {
		o.text.Segments = nil
		o.text.Refresh()
	})
}

func (o *OutputLog) append(seg *widget.TextSegment) {
	fyne.Do(func() {
		o.text.Segments = append(o.text.Segments, seg)
		o.text.Refresh()
		o.scroll.ScrollToBottom()
	})
}

// Lines returns the text of every entry, oldest first.
func (o *OutputLog) Lines() []string {
	lines := make([]string, 0, len(o.text.Segments))
	for _, s := range o.text.Segments {
		lines = append(lines, s.Textual())
	}
	return lines
}

package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	tnet "TurtleBoard/internal/net"
)

const validateTimeout = 5 * time.Second

// Editor is the program text box plus the list of problems the interpreter
// reported for it. Validation runs after typing pauses.
type Editor struct {
	entry    *widget.Entry
	problems *widget.Label

	interp   tnet.Interpreter
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewEditor(interp tnet.Interpreter, debounce time.Duration) *Editor {
	e := &Editor{
		entry:    widget.NewMultiLineEntry(),
		problems: widget.NewLabel(""),
		interp:   interp,
		debounce: debounce,
	}
	e.entry.TextStyle = fyne.TextStyle{Monospace: true}
	e.entry.SetPlaceHolder("Write your program here")
	e.entry.SetText(examples[0].code)
	e.entry.OnChanged = func(string) { e.schedule() }
	e.problems.Wrapping = fyne.TextWrapWord
	return e
}

func (e *Editor) Object() fyne.CanvasObject {
	return container.NewBorder(nil, e.problems, nil, nil, e.entry)
}

func (e *Editor) Text() string { return e.entry.Text }

// LoadExample replaces the program with the named example. It reports
// whether the name was known.
func (e *Editor) LoadExample(name string) bool {
	code, ok := exampleCode(name)
	if !ok {
		return false
	}
	e.entry.SetText(code)
	return true
}

func (e *Editor) Focus(c fyne.Canvas) { c.Focus(e.entry) }

func (e *Editor) schedule() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
	}
	code := e.entry.Text
	e.timer = time.AfterFunc(e.debounce, func() { e.validate(code) })
}

func (e *Editor) validate(code string) {
	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	diags, err := e.interp.Validate(ctx, code)
	if err != nil {
		log.Printf("[UI] Validation request failed: %v", err)
		return
	}
	text := formatDiagnostics(diags)
	fyne.Do(func() { e.problems.SetText(text) })
}

func formatDiagnostics(diags []tnet.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("Line %d: %s", d.Line, d.Message)
	}
	return strings.Join(lines, "\n")
}

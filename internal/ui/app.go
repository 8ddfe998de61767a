package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"TurtleBoard/internal/config"
	"TurtleBoard/internal/export"
	tnet "TurtleBoard/internal/net"
	"TurtleBoard/internal/playback"
	"TurtleBoard/internal/state"
)

const (
	pngName = "CodyDrawing.png"
	pdfName = "CodyDrawing.pdf"
)

// Player ties the editor, the canvas and the playback engine together.
type Player struct {
	cfg    config.Client
	interp tnet.Interpreter

	win    fyne.Window
	board  *BoardWidget
	editor *Editor
	out    *OutputLog
	tools  *toolbar
	intro  *stepIntro
	engine *playback.Engine

	// ctx lives as long as the window; closing it unblocks a waiting pass.
	ctx    context.Context
	cancel context.CancelFunc
}

func newPlayer(a fyne.App, cfg config.Client, interp tnet.Interpreter) *Player {
	p := &Player{
		cfg:    cfg,
		interp: interp,
		win:    a.NewWindow("TurtleBoard"),
		board:  NewBoardWidget(),
		editor: NewEditor(interp, cfg.ValidateDebounce),
		out:    NewOutputLog(),
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.intro = &stepIntro{win: p.win}
	p.engine = playback.NewEngine(state.NewDrawing(), p.board, playback.Options{
		NormalDelay: cfg.NormalDelay,
		FastDelay:   cfg.FastDelay,
		StepIntro:   p.intro,
	})

	name := savedTheme(a.Preferences())
	actions := toolbarActions{
		Run:       p.Run,
		Clear:     p.Clear,
		NextStep:  func() { p.engine.ReleaseAdvance() },
		Example:   p.loadExample,
		ExportPNG: func() { p.export(pngName, export.ExportPNG) },
		ExportPDF: func() { p.export(pdfName, export.ExportPDF) },
		SetDark: func(dark bool) {
			name := themeLight
			if dark {
				name = themeDark
			}
			applyTheme(a, p.board, name)
			p.redraw()
		},
	}
	p.tools = newToolbar(actions, name == themeDark)
	applyTheme(a, p.board, name)

	visual := container.NewBorder(nil, p.out.Object(), nil, nil, p.board)
	split := container.NewHSplit(p.editor.Object(), visual)
	split.Offset = 0.45
	p.win.SetContent(container.NewBorder(p.tools.object(actions), nil, nil, nil, split))
	p.win.Resize(fyne.NewSize(1100, 720))
	p.win.Canvas().SetOnTypedKey(p.typedKey)
	p.win.SetOnClosed(p.cancel)

	p.redraw()
	return p
}

// RunApp opens the player window and blocks until it is closed.
func RunApp(cfg config.Client, interp tnet.Interpreter) {
	a := app.NewWithID("io.turtleboard.player")
	p := newPlayer(a, cfg, interp)
	p.out.Info(fmt.Sprintf("Ready. Speed: %s", p.tools.speed.Mode()))
	p.win.ShowAndRun()
}

// Run executes the editor's program remotely and plays it back. It is
// called on the UI goroutine.
func (p *Player) Run() {
	if p.engine.Busy() {
		p.out.Error("Execution already in progress. Please wait.")
		return
	}
	if err := p.engine.ResetDrawing(); err != nil {
		p.out.Error("Execution already in progress. Please wait.")
		return
	}
	p.tools.setBusy(true)
	p.out.Reset()
	code := p.editor.Text()

	go func() {
		defer fyne.Do(func() {
			p.tools.setBusy(false)
			p.editor.Focus(p.win.Canvas())
		})
		p.play(code)
	}()
}

func (p *Player) play(code string) {
	events, err := p.interp.Execute(p.ctx, code)
	if err != nil {
		p.out.Error(fmt.Sprintf("Network or server error: %v", err))
		return
	}

	err = p.engine.Play(p.ctx, events, p.tools.speed.Mode, playback.Hooks{
		OnSay:   func(m string) { p.out.Info("Cody says: " + m) },
		OnError: func(m string) { p.out.Error("ERROR: " + m) },
		OnFault: func(f *playback.RuntimeFault) { p.out.Error("Rendering error: " + f.Error()) },
	})

	var fault *playback.RuntimeFault
	switch {
	case err == nil:
	case errors.Is(err, playback.ErrBusy):
		p.out.Error("Execution already in progress. Please wait.")
	case errors.As(err, &fault):
		log.Printf("[UI] Rendering error: %v", fault)
	default:
		log.Printf("[UI] Playback stopped: %v", err)
	}
}

func (p *Player) Clear() {
	if err := p.engine.ResetDrawing(); err != nil {
		p.out.Error("Cannot clear while a program is running.")
		return
	}
	p.out.Reset()
	p.out.Info("Canvas cleared")
}

func (p *Player) loadExample(name string) {
	if p.editor.LoadExample(name) {
		p.out.Info("Loaded example: " + name)
	}
}

func (p *Player) export(name string, write func(string, *state.Drawing) error) {
	path := filepath.Join(p.cfg.ExportDir, name)
	if err := write(path, p.engine.Drawing()); err != nil {
		p.out.Error(fmt.Sprintf("Failed to export drawing: %v", err))
		return
	}
	p.out.Info("Drawing exported as " + path)
}

// typedKey handles keys that reach the window rather than the editor: Enter
// or Escape close the step dialog, Enter otherwise takes one step.
func (p *Player) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		p.intro.dismiss()
	case fyne.KeyReturn, fyne.KeyEnter:
		if p.intro.dismiss() {
			return
		}
		p.engine.ReleaseAdvance()
	}
}

// redraw repaints the canvas outside of a pass, e.g. after a theme change.
func (p *Player) redraw() {
	if !p.engine.Busy() {
		p.engine.Drawing().Redraw(p.board)
	}
}

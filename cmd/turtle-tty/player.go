package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"TurtleBoard/internal/config"
	"TurtleBoard/internal/playback"
	"TurtleBoard/internal/render"
	"TurtleBoard/internal/sound"
	"TurtleBoard/internal/state"
)

const (
	statusRows = 2
	helpLine   = "[0/1/2] speed  [Enter] step  [c] clear  [r] replay  [q] quit"
	stepHelp   = "Step mode: press Enter to draw each step. Press Enter to begin."
)

type player struct {
	screen tcell.Screen
	cells  *render.Cells
	engine *playback.Engine
	intro  *keyIntro
	beeper *sound.Beeper
	events []state.Event
	speed  atomic.Int32

	// mu serialises drawing on the screen between the playback goroutine
	// and the input loop.
	mu      sync.Mutex
	message string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan error
}

func newPlayer(screen tcell.Screen, cfg config.Client, events []state.Event, speed playback.SpeedMode, beeper *sound.Beeper) *player {
	p := &player{
		screen: screen,
		beeper: beeper,
		events: events,
		done:   make(chan error, 1),
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.speed.Store(int32(speed))

	p.cells = render.NewCells(screen, state.CanvasSize)
	p.cells.Reserved = statusRows
	p.cells.BeforeShow = p.paintStatus
	p.intro = &keyIntro{show: p.setMessage}
	p.engine = playback.NewEngine(state.NewDrawing(), lockedSurface{p}, playback.Options{
		NormalDelay: cfg.NormalDelay,
		FastDelay:   cfg.FastDelay,
		StepIntro:   p.intro,
	})
	return p
}

func (p *player) mode() playback.SpeedMode { return playback.SpeedMode(p.speed.Load()) }

// run plays the trace once and then handles input until the user quits.
func (p *player) run() {
	p.play()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handleInput(ev) {
				return
			}
		case err := <-p.done:
			p.finished(err)
		}
	}
}

func (p *player) cleanup() {
	p.cancel()
	if p.engine.Busy() {
		<-p.done
	}
	p.beeper.Close()
	p.screen.Fini()
}

func (p *player) play() {
	if err := p.engine.ResetDrawing(); err != nil {
		p.setMessage("Execution already in progress. Please wait.")
		return
	}
	p.setMessage(fmt.Sprintf("Playing %d events at %s speed", len(p.events), p.mode()))
	go func() {
		p.done <- p.engine.Play(p.ctx, p.events, p.mode, playback.Hooks{
			OnSay: func(m string) {
				p.setMessage("Cody says: " + m)
				p.beeper.Say()
			},
			OnError: func(m string) {
				p.setMessage("ERROR: " + m)
				p.beeper.Error()
			},
			OnFault: func(f *playback.RuntimeFault) {
				p.setMessage("Rendering error: " + f.Error())
				p.beeper.Error()
			},
		})
	}()
}

func (p *player) finished(err error) {
	var fault *playback.RuntimeFault
	switch {
	case err == nil:
		p.setMessage("Finished. Press r to replay.")
	case errors.As(err, &fault):
		log.Printf("[TTY] Rendering error: %v", fault)
	case errors.Is(err, context.Canceled):
	default:
		log.Printf("[TTY] Playback stopped: %v", err)
		p.setMessage(fmt.Sprintf("Stopped: %v", err))
	}
}

// handleInput reports false when the player should quit.
func (p *player) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			p.advance()
			return true
		case tcell.KeyRune:
		default:
			return true
		}

		switch r := ev.Rune(); r {
		case 'q':
			return false
		case ' ':
			p.advance()
		case '0', '1', '2':
			m := playback.SpeedFromSlider(int(r - '0'))
			p.speed.Store(int32(m))
			p.setMessage("Speed: " + m.String())
		case 'c':
			if err := p.engine.ResetDrawing(); err != nil {
				p.setMessage("Cannot clear while a program is running.")
				return true
			}
			p.setMessage("Canvas cleared")
		case 'r':
			p.play()
		}

	case *tcell.EventResize:
		p.screen.Sync()
		if !p.engine.Busy() {
			p.engine.Drawing().Redraw(lockedSurface{p})
		}
	}
	return true
}

// advance closes the step instructions if they are showing, otherwise it
// lets a step-mode pass take one more event.
func (p *player) advance() {
	if p.intro.dismiss() {
		p.setMessage("Step mode")
		return
	}
	if !p.engine.ReleaseAdvance() && !p.engine.Busy() {
		p.setMessage("Nothing to step. Press r to replay.")
	}
}

func (p *player) setMessage(m string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.message = m
	p.paintStatus()
	p.screen.Show()
}

// paintStatus draws the two reserved rows. Callers hold p.mu.
func (p *player) paintStatus() {
	w, h := p.screen.Size()
	msgRow, helpRow := h-2, h-1
	plain := tcell.StyleDefault
	for x := 0; x < w; x++ {
		p.screen.SetContent(x, msgRow, ' ', nil, plain)
		p.screen.SetContent(x, helpRow, ' ', nil, plain)
	}
	drawText(p.screen, 0, msgRow, p.message, plain.Bold(true))
	drawText(p.screen, 0, helpRow, fmt.Sprintf("Speed: %s  %s", p.mode(), helpLine), plain.Reverse(true))
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// lockedSurface takes the player's screen lock around each drawing call.
type lockedSurface struct{ p *player }

func (l lockedSurface) Clear() {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	l.p.cells.Clear()
}

func (l lockedSurface) Line(from, to state.Point, c color.Color, width float64) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	l.p.cells.Line(from, to, c, width)
}

func (l lockedSurface) Polygon(pts []state.Point, fill, outline color.Color, width float64) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	l.p.cells.Polygon(pts, fill, outline, width)
}

func (l lockedSurface) Flush() {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	l.p.cells.Flush()
}

// keyIntro shows the step instructions on the status line and waits for a
// key press.
type keyIntro struct {
	mu   sync.Mutex
	ack  chan struct{}
	show func(string)
}

func (k *keyIntro) Acknowledge(ctx context.Context) error {
	ch := make(chan struct{})
	k.mu.Lock()
	k.ack = ch
	k.mu.Unlock()
	k.show(stepHelp)

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		k.mu.Lock()
		if k.ack == ch {
			k.ack = nil
		}
		k.mu.Unlock()
		return ctx.Err()
	}
}

// dismiss reports whether the instructions were showing.
func (k *keyIntro) dismiss() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.ack == nil {
		return false
	}
	close(k.ack)
	k.ack = nil
	return true
}

package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"TurtleBoard/internal/state"
)

type Status int32

const (
	Idle Status = iota
	Playing
	Faulted
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Faulted:
		return "faulted"
	}
	return "idle"
}

// StepIntro is the one-time instruction the host shows before the first
// manual step of a pass. Acknowledge blocks until the user dismisses it.
type StepIntro interface {
	Acknowledge(ctx context.Context) error
}

// StepIntroFunc adapts a function to StepIntro.
type StepIntroFunc func(ctx context.Context) error

func (f StepIntroFunc) Acknowledge(ctx context.Context) error { return f(ctx) }

// Hooks receive the textual output of a pass. OnSay and OnError are called
// synchronously on the playback goroutine, before the event's redraw.
type Hooks struct {
	OnSay   func(message string)
	OnError func(message string)
	// OnFault, when set, receives a pass's runtime fault instead of OnError,
	// so hosts can tell program errors from playback failures.
	OnFault func(fault *RuntimeFault)
}

type Options struct {
	NormalDelay time.Duration
	FastDelay   time.Duration
	// StepIntro may be nil, in which case step mode starts waiting for
	// advances straight away.
	StepIntro StepIntro
}

// Engine replays interpreter events onto a Drawing and a Surface, one event
// at a time, pacing itself by the host's speed mode.
type Engine struct {
	drawing     *state.Drawing
	surface     state.Surface
	intro       StepIntro
	advance     Rendezvous
	normalDelay time.Duration
	fastDelay   time.Duration

	playing atomic.Bool
	status  atomic.Int32
}

func NewEngine(d *state.Drawing, s state.Surface, opts Options) *Engine {
	if opts.NormalDelay <= 0 {
		opts.NormalDelay = DefaultNormalDelay
	}
	if opts.FastDelay <= 0 {
		opts.FastDelay = DefaultFastDelay
	}
	return &Engine{
		drawing:     d,
		surface:     s,
		intro:       opts.StepIntro,
		normalDelay: opts.NormalDelay,
		fastDelay:   opts.FastDelay,
	}
}

// passState is the bookkeeping of one Play call.
type passState struct {
	id         PassID
	introShown bool
}

// Play applies events in order, redrawing after each and then suspending
// according to speed(). It returns ErrBusy if another pass is running, a
// *RuntimeFault if an event could not be applied, or ctx.Err() if the pass
// was cancelled while suspended.
func (e *Engine) Play(ctx context.Context, events []state.Event, speed SpeedFunc, hooks Hooks) error {
	if !e.playing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer e.playing.Store(false)

	if len(events) == 0 {
		return nil
	}
	if speed == nil {
		speed = Fixed(Normal)
	}

	p := &passState{id: nextPass()}
	e.status.Store(int32(Playing))
	log.Printf("[PLAYBACK] pass %s started with %d events", p.id, len(events))

	err := e.run(ctx, p, events, speed, hooks)

	var fault *RuntimeFault
	switch {
	case err == nil:
		e.status.Store(int32(Idle))
		log.Printf("[PLAYBACK] pass %s finished", p.id)
	case errors.As(err, &fault):
		e.status.Store(int32(Faulted))
		log.Printf("[PLAYBACK] pass %s faulted: %v", p.id, fault)
		reportFault(p.id, hooks, fault)
	default:
		e.status.Store(int32(Idle))
		log.Printf("[PLAYBACK] pass %s stopped: %v", p.id, err)
	}
	return err
}

func (e *Engine) run(ctx context.Context, p *passState, events []state.Event, speed SpeedFunc, hooks Hooks) error {
	if speed() == Step {
		if err := e.ensureStepIntro(ctx, p); err != nil {
			return err
		}
	}
	for i, ev := range events {
		if err := e.apply(i, ev, hooks); err != nil {
			return err
		}
		if err := e.suspend(ctx, p, speed()); err != nil {
			return err
		}
	}
	return nil
}

// apply runs one event to completion: mutate, emit text, redraw.
func (e *Engine) apply(i int, ev state.Event, hooks Hooks) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RuntimeFault{Index: i, Kind: kindOf(ev), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	switch ev := ev.(type) {
	case state.ClearEvent:
		e.drawing.ApplyClear()
	case state.MoveEvent:
		if err := e.drawing.ApplyMove(ev); err != nil {
			return &RuntimeFault{Index: i, Kind: ev.Kind(), Err: err}
		}
	case state.SayEvent:
		if hooks.OnSay != nil {
			hooks.OnSay(ev.Message)
		}
	case state.ErrorEvent:
		if hooks.OnError != nil {
			hooks.OnError(ev.Message)
		}
	case nil:
		return &RuntimeFault{Index: i, Err: errors.New("missing event")}
	default:
		return &RuntimeFault{Index: i, Kind: ev.Kind(), Err: fmt.Errorf("unsupported event %T", ev)}
	}

	if e.surface != nil {
		e.drawing.Redraw(e.surface)
	}
	return nil
}

func (e *Engine) suspend(ctx context.Context, p *passState, mode SpeedMode) error {
	switch mode {
	case Step:
		if err := e.ensureStepIntro(ctx, p); err != nil {
			return err
		}
		return e.advance.Wait(ctx)
	case Fast:
		return sleep(ctx, e.fastDelay)
	default:
		return sleep(ctx, e.normalDelay)
	}
}

// ensureStepIntro shows the step instructions at most once per pass.
func (e *Engine) ensureStepIntro(ctx context.Context, p *passState) error {
	if p.introShown {
		return nil
	}
	p.introShown = true
	if e.intro == nil {
		return nil
	}
	log.Printf("[PLAYBACK] pass %s waiting for step intro", p.id)
	if err := e.intro.Acknowledge(ctx); err != nil {
		return fmt.Errorf("step intro: %w", err)
	}
	return nil
}

// ReleaseAdvance lets a step-mode pass take its next event. It reports
// whether a pass was actually waiting.
func (e *Engine) ReleaseAdvance() bool {
	return e.advance.Release()
}

// ResetDrawing clears the drawing and redraws the empty canvas.
func (e *Engine) ResetDrawing() error {
	if !e.playing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer e.playing.Store(false)

	e.drawing.Reset()
	if e.surface != nil {
		e.drawing.Redraw(e.surface)
	}
	e.status.Store(int32(Idle))
	return nil
}

func (e *Engine) Status() Status { return Status(e.status.Load()) }

func (e *Engine) Busy() bool { return e.playing.Load() }

// WaitingForAdvance reports whether a step-mode pass is parked on
// ReleaseAdvance.
func (e *Engine) WaitingForAdvance() bool { return e.advance.Pending() }

func (e *Engine) Drawing() *state.Drawing { return e.drawing }

// reportFault hands the fault to OnFault or OnError. A hook that panics here
// may already have failed once for this pass, so the panic is only logged.
func reportFault(id PassID, hooks Hooks, fault *RuntimeFault) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PLAYBACK] pass %s: hook panicked while reporting fault: %v", id, r)
		}
	}()
	switch {
	case hooks.OnFault != nil:
		hooks.OnFault(fault)
	case hooks.OnError != nil:
		hooks.OnError(fault.Error())
	}
}

func kindOf(ev state.Event) state.EventKind {
	if ev == nil {
		return ""
	}
	return ev.Kind()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

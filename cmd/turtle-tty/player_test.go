package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TurtleBoard/internal/config"
	"TurtleBoard/internal/playback"
	"TurtleBoard/internal/state"
)

func newTestPlayer(t *testing.T, events []state.Event, speed playback.SpeedMode) (*player, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 22)
	t.Cleanup(screen.Fini)

	cfg := config.Client{NormalDelay: 2 * time.Millisecond, FastDelay: time.Millisecond}
	p := newPlayer(screen, cfg, events, speed, nil)
	t.Cleanup(p.cancel)
	return p, screen
}

func statusText(screen tcell.SimulationScreen, row int) string {
	cells, w, _ := screen.GetContents()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		out = append(out, cells[row*w+x].Runes...)
	}
	return string(out)
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

var square = []state.Event{
	state.MoveEvent{FromX: 250, FromY: 250, ToX: 250, ToY: 150, Color: "red", PenDown: true},
	state.SayEvent{Message: "half way"},
	state.MoveEvent{FromX: 250, FromY: 150, ToX: 350, ToY: 150, NewHeading: 90, Color: "red", PenDown: true},
}

func TestParseSpeed(t *testing.T) {
	for name, want := range map[string]playback.SpeedMode{
		"step": playback.Step, "0": playback.Step,
		"Normal": playback.Normal, "fast": playback.Fast, "2": playback.Fast,
	} {
		got, err := parseSpeed(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := parseSpeed("warp")
	assert.Error(t, err)
}

func TestReadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"ClearEvent"}]`), 0o600))

	events, err := readTrace(path)
	require.NoError(t, err)
	assert.Equal(t, []state.Event{state.ClearEvent{}}, events)
}

func TestPlayerFastPass(t *testing.T) {
	p, screen := newTestPlayer(t, square, playback.Fast)

	p.play()
	select {
	case err := <-p.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pass did not finish")
	}
	p.finished(nil)

	assert.Len(t, p.engine.Drawing().Strokes(), 2)
	assert.Contains(t, statusText(screen, 20), "Finished")
	assert.Contains(t, statusText(screen, 21), "Speed: Fast")
}

func TestPlayerStepsOnEnter(t *testing.T) {
	p, screen := newTestPlayer(t, square, playback.Step)

	p.play()
	require.Eventually(t, func() bool { return containsText(screen, 20, "Step mode: press Enter") }, time.Second, time.Millisecond)

	// The first Enter only closes the instructions.
	assert.True(t, p.handleInput(key(tcell.KeyEnter, 0)))
	require.Eventually(t, p.engine.WaitingForAdvance, time.Second, time.Millisecond)
	assert.Len(t, p.engine.Drawing().Strokes(), 1)

	assert.True(t, p.handleInput(key(tcell.KeyRune, ' ')))
	require.Eventually(t, func() bool { return containsText(screen, 20, "Cody says: half way") }, time.Second, time.Millisecond)

	// Switching to fast lets the rest of the pass run on its own.
	assert.True(t, p.handleInput(key(tcell.KeyRune, '2')))
	require.Eventually(t, p.engine.WaitingForAdvance, time.Second, time.Millisecond)
	p.handleInput(key(tcell.KeyEnter, 0))

	select {
	case err := <-p.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pass did not finish")
	}
	assert.Len(t, p.engine.Drawing().Strokes(), 2)
}

func containsText(screen tcell.SimulationScreen, row int, s string) bool {
	return strings.Contains(statusText(screen, row), s)
}

func TestPlayerKeys(t *testing.T) {
	p, screen := newTestPlayer(t, nil, playback.Normal)

	assert.True(t, p.handleInput(key(tcell.KeyRune, '0')))
	assert.Equal(t, playback.Step, p.mode())
	assert.True(t, p.handleInput(key(tcell.KeyRune, '9')))
	assert.Equal(t, playback.Step, p.mode())

	assert.True(t, p.handleInput(key(tcell.KeyRune, 'c')))
	assert.Contains(t, statusText(screen, 20), "Canvas cleared")

	assert.True(t, p.handleInput(key(tcell.KeyEnter, 0)))
	assert.Contains(t, statusText(screen, 20), "Nothing to step")

	assert.False(t, p.handleInput(key(tcell.KeyRune, 'q')))
	assert.False(t, p.handleInput(key(tcell.KeyEscape, 0)))
	assert.False(t, p.handleInput(key(tcell.KeyCtrlC, 0)))
}

func TestKeyIntroCancel(t *testing.T) {
	k := &keyIntro{show: func(string) {}}
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- k.Acknowledge(ctx) }()
	require.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return k.ack != nil
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.False(t, k.dismiss())
}

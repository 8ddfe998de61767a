package ui

import (
	"context"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TurtleBoard/internal/config"
	tnet "TurtleBoard/internal/net"
	"TurtleBoard/internal/playback"
	"TurtleBoard/internal/state"
)

type fakeInterpreter struct {
	events []state.Event
	diags  []tnet.Diagnostic
}

func (f *fakeInterpreter) Execute(context.Context, string) ([]state.Event, error) {
	return f.events, nil
}

func (f *fakeInterpreter) Validate(context.Context, string) ([]tnet.Diagnostic, error) {
	return f.diags, nil
}

func testConfig(t *testing.T) config.Client {
	return config.Client{
		NormalDelay:      time.Millisecond,
		FastDelay:        time.Millisecond,
		ValidateDebounce: time.Hour,
		ExportDir:        t.TempDir(),
	}
}

func TestBoardWidgetPublishesFrames(t *testing.T) {
	test.NewApp()
	b := NewBoardWidget()
	before := b.Frame()

	d := state.NewDrawing()
	require.NoError(t, d.ApplyMove(state.MoveEvent{FromX: 250, FromY: 250, ToX: 250, ToY: 100, Color: "red", PenDown: true}))
	d.Redraw(b)

	after, ok := b.Frame().(*image.RGBA)
	require.True(t, ok)
	assert.NotSame(t, before, after)
	assert.Equal(t, uint8(255), after.RGBAAt(250, 150).R)
	assert.Equal(t, uint8(0), after.RGBAAt(250, 150).G)
}

func TestSpeedControl(t *testing.T) {
	test.NewApp()
	s := newSpeedControl()
	assert.Equal(t, playback.Normal, s.Mode())

	s.slider.SetValue(0)
	assert.Equal(t, playback.Step, s.Mode())
	assert.Equal(t, "Step-by-Step", s.label.Text)

	s.slider.SetValue(2)
	assert.Equal(t, playback.Fast, s.Mode())
}

func TestOutputLog(t *testing.T) {
	test.NewApp()
	o := NewOutputLog()
	o.Info("Cody says: hi")
	o.Error("ERROR: bad")
	assert.Equal(t, []string{"Cody says: hi", "ERROR: bad"}, o.Lines())

	o.Reset()
	assert.Empty(t, o.Lines())
}

func TestFormatDiagnostics(t *testing.T) {
	assert.Empty(t, formatDiagnostics(nil))
	assert.Equal(t, "Line 2: unknown word\nLine 5: missing end",
		formatDiagnostics([]tnet.Diagnostic{{Line: 2, Message: "unknown word"}, {Line: 5, Message: "missing end"}}))
}

func TestPlayerClear(t *testing.T) {
	p := newPlayer(test.NewApp(), testConfig(t), &fakeInterpreter{})
	require.NoError(t, p.engine.Drawing().ApplyMove(state.MoveEvent{FromX: 0, FromY: 0, ToX: 10, ToY: 10, Color: "red", PenDown: true}))

	p.Clear()
	assert.Empty(t, p.engine.Drawing().Strokes())
	assert.Equal(t, []string{"Canvas cleared"}, p.out.Lines())
}

func TestPlayerExport(t *testing.T) {
	cfg := testConfig(t)
	p := newPlayer(test.NewApp(), cfg, &fakeInterpreter{})

	p.export(pngName, func(path string, d *state.Drawing) error {
		return os.WriteFile(path, []byte("png"), 0o600)
	})
	_, err := os.Stat(filepath.Join(cfg.ExportDir, pngName))
	require.NoError(t, err)
	assert.Equal(t, []string{"Drawing exported as " + filepath.Join(cfg.ExportDir, pngName)}, p.out.Lines())
}

func TestPlayerEnterReleasesStep(t *testing.T) {
	p := newPlayer(test.NewApp(), testConfig(t), &fakeInterpreter{})
	// No intro dialog, so the pass goes straight to waiting for Enter.
	p.engine = playback.NewEngine(state.NewDrawing(), p.board, playback.Options{})

	done := make(chan error, 1)
	go func() {
		done <- p.engine.Play(context.Background(), []state.Event{state.ClearEvent{}}, playback.Fixed(playback.Step), playback.Hooks{})
	}()
	deadline := time.Now().Add(2 * time.Second)
	for !p.engine.WaitingForAdvance() {
		if time.Now().After(deadline) {
			t.Fatal("pass never waited for a step")
		}
		time.Sleep(time.Millisecond)
	}

	p.typedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	require.NoError(t, <-done)
}

func TestPlayerLoadsExamples(t *testing.T) {
	p := newPlayer(test.NewApp(), testConfig(t), &fakeInterpreter{})
	require.NotEmpty(t, exampleNames())
	assert.Equal(t, examples[0].code, p.editor.Text())

	p.tools.examples.SetSelected("Spiral")
	code, ok := exampleCode("Spiral")
	require.True(t, ok)
	assert.Equal(t, code, p.editor.Text())
	assert.Equal(t, []string{"Loaded example: Spiral"}, p.out.Lines())

	assert.False(t, p.editor.LoadExample("Nope"))
	assert.Equal(t, code, p.editor.Text())
}

func TestPlayerShowsRenderingErrors(t *testing.T) {
	interp := &fakeInterpreter{events: []state.Event{
		state.ErrorEvent{Message: "line 2: unknown command"},
		state.MoveEvent{FromX: 0, FromY: 0, ToX: math.NaN(), ToY: 0, Color: "red", PenDown: true},
	}}
	p := newPlayer(test.NewApp(), testConfig(t), interp)

	p.play("move forward 10")

	lines := p.out.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "ERROR: line 2: unknown command", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Rendering error: "), lines[1])
	assert.Equal(t, playback.Faulted, p.engine.Status())
}

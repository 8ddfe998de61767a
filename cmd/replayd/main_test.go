package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TurtleBoard/internal/state"
)

func TestDemoSquareClosesTheSquare(t *testing.T) {
	d := state.NewDrawing()
	for _, ev := range demoSquare() {
		switch ev := ev.(type) {
		case state.MoveEvent:
			require.NoError(t, d.ApplyMove(ev))
		case state.ClearEvent:
			d.ApplyClear()
		}
	}
	assert.Len(t, d.Strokes(), 4)
	p := d.Pointer()
	assert.Equal(t, 250.0, p.X)
	assert.Equal(t, 250.0, p.Y)
}

func TestLoadEventsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"SayEvent","message":"hi"}]`), 0o600))

	events, err := loadEvents(path)
	require.NoError(t, err)
	assert.Equal(t, []state.Event{state.SayEvent{Message: "hi"}}, events)

	_, err = loadEvents(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

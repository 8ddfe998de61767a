package state

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/colornames"
)

// Drawing holds everything the turtle has drawn so far plus the turtle itself.
// It is mutated by a single playback pass and may be read concurrently by a
// host that wants a snapshot.
type Drawing struct {
	strokes []Stroke
	pointer Pointer
	mu      sync.RWMutex
}

func NewDrawing() *Drawing {
	return &Drawing{
		strokes: make([]Stroke, 0),
		pointer: DefaultPointer(),
	}
}

// Reset empties the strokes and puts the pointer back in the middle of the
// canvas. Both happen under one lock.
func (d *Drawing) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.strokes = make([]Stroke, 0)
	d.pointer = DefaultPointer()
}

func (d *Drawing) ApplyClear() {
	d.Reset()
}

// ApplyMove records a stroke for a pen-down move with distinct endpoints and
// always moves the pointer to the move's destination.
func (d *Drawing) ApplyMove(m MoveEvent) error {
	for _, v := range [...]float64{m.FromX, m.FromY, m.ToX, m.ToY, m.NewHeading} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("move has non-finite value %v", v)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if m.PenDown && (m.FromX != m.ToX || m.FromY != m.ToY) {
		d.strokes = append(d.strokes, Stroke{
			FromX: m.FromX,
			FromY: m.FromY,
			ToX:   m.ToX,
			ToY:   m.ToY,
			Color: m.Color,
		})
	}
	d.pointer = Pointer{X: m.ToX, Y: m.ToY, Heading: m.NewHeading, Color: m.Color}
	return nil
}

func (d *Drawing) Strokes() []Stroke {
	d.mu.RLock()
	defer d.mu.RUnlock()
	strokes := make([]Stroke, len(d.strokes))
	copy(strokes, d.strokes)
	return strokes
}

func (d *Drawing) Pointer() Pointer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pointer
}

// Redraw paints the current state onto s: strokes in order, then the pointer
// on top.
func (d *Drawing) Redraw(s Surface) {
	d.mu.RLock()
	strokes := make([]Stroke, len(d.strokes))
	copy(strokes, d.strokes)
	pointer := d.pointer
	d.mu.RUnlock()

	s.Clear()
	for _, st := range strokes {
		s.Line(Point{st.FromX, st.FromY}, Point{st.ToX, st.ToY}, ParseColor(st.Color), StrokeWidth)
	}
	s.Polygon(pointer.Glyph(), ParseColor(pointer.Color), colornames.Black, OutlineWidth)
	if f, ok := s.(Flusher); ok {
		f.Flush()
	}
}

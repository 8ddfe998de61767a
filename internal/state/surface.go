package state

import (
	"image/color"
	"math"
)

// Surface is anything a Drawing can be redrawn onto.
type Surface interface {
	Clear()
	Line(from, to Point, c color.Color, width float64)
	Polygon(pts []Point, fill, outline color.Color, width float64)
}

// Flusher is implemented by surfaces that buffer a frame and need to be told
// when a redraw is complete.
type Flusher interface {
	Flush()
}

// arrow is the pointer glyph in its own frame, tip first, facing up.
var arrow = [...]Point{
	{0, -18},
	{10, 7},
	{0, 0},
	{-4, 7},
}

// Glyph returns the pointer arrow rotated to heading and placed at (x, y).
func (p Pointer) Glyph() []Point {
	rad := p.Heading * math.Pi / 180
	sin, cos := math.Sincos(rad)
	pts := make([]Point, len(arrow))
	for i, a := range arrow {
		pts[i] = Point{
			X: p.X + a.X*cos - a.Y*sin,
			Y: p.Y + a.X*sin + a.Y*cos,
		}
	}
	return pts
}

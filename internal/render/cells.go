package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"TurtleBoard/internal/state"
)

// Screen is the part of tcell.Screen the cell surface draws with.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

const (
	strokeRune  = '•'
	pointerRune = '█'
)

// Cells draws a canvas onto a terminal, scaling the square canvas into the
// top rows of the screen. Rows below Reserved are left to the caller.
type Cells struct {
	screen   Screen
	size     float64
	Reserved int
	// BeforeShow runs at the end of every frame, before the screen is
	// shown, so the caller can paint its reserved rows.
	BeforeShow func()
}

func NewCells(s Screen, canvasSize float64) *Cells {
	return &Cells{screen: s, size: canvasSize}
}

func (c *Cells) area() (int, int) {
	w, h := c.screen.Size()
	h -= c.Reserved
	if h < 1 {
		h = 1
	}
	return w, h
}

func (c *Cells) toCell(p state.Point) (int, int) {
	w, h := c.area()
	x := int(math.Floor(p.X / c.size * float64(w)))
	y := int(math.Floor(p.Y / c.size * float64(h)))
	return x, y
}

func (c *Cells) set(x, y int, r rune, col color.Color) {
	w, h := c.area()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(tcell.FromImageColor(col)))
}

func (c *Cells) Clear() {
	c.screen.Clear()
}

// Line rasterises a segment with Bresenham in cell space. The segment is
// clipped to the canvas first, so only visible cells are walked.
func (c *Cells) Line(from, to state.Point, col color.Color, _ float64) {
	from, to, ok := clip(from, to, 0, c.size)
	if !ok {
		return
	}
	x0, y0 := c.toCell(from)
	x1, y1 := c.toCell(to)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, strokeRune, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Polygon fills every cell whose centre lies inside pts. A polygon smaller
// than a cell still marks the cell holding its first vertex.
func (c *Cells) Polygon(pts []state.Point, fill, _ color.Color, _ float64) {
	if len(pts) == 0 {
		return
	}
	w, h := c.area()
	cw, ch := c.size/float64(w), c.size/float64(h)

	minX, minY := c.toCell(pts[0])
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		x, y := c.toCell(p)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	marked := false
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			centre := state.Point{X: (float64(x) + 0.5) * cw, Y: (float64(y) + 0.5) * ch}
			if inside(centre, pts) {
				c.set(x, y, pointerRune, fill)
				marked = true
			}
		}
	}
	if !marked {
		x, y := c.toCell(pts[0])
		c.set(x, y, pointerRune, fill)
	}
}

func (c *Cells) Flush() {
	if c.BeforeShow != nil {
		c.BeforeShow()
	}
	c.screen.Show()
}

// clip trims the segment to the square [lo, hi] on both axes with
// Liang-Barsky. It reports false when nothing of the segment is inside.
func clip(a, b state.Point, lo, hi float64) (state.Point, state.Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	edges := [4][2]float64{
		{-dx, a.X - lo},
		{dx, hi - a.X},
		{-dy, a.Y - lo},
		{dy, hi - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = min(t1, r)
		}
	}
	return state.Point{X: a.X + t0*dx, Y: a.Y + t0*dy},
		state.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// inside is the even-odd ray casting test.
func inside(p state.Point, pts []state.Point) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

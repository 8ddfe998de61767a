package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"TurtleBoard/internal/state"
)

// Raster is an in-memory RGBA canvas. It is not safe for concurrent use.
type Raster struct {
	img *image.RGBA
	bg  color.Color
	z   *vector.Rasterizer
}

func NewRaster(size int, bg color.Color) *Raster {
	r := &Raster{
		img: image.NewRGBA(image.Rect(0, 0, size, size)),
		bg:  bg,
		z:   vector.NewRasterizer(size, size),
	}
	r.Clear()
	return r
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) SetBackground(bg color.Color) { r.bg = bg }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg), image.Point{}, draw.Src)
}

func (r *Raster) Line(from, to state.Point, c color.Color, width float64) {
	if q := segment(from, to, width); q != nil {
		r.fill(q, c)
	}
}

func (r *Raster) Polygon(pts []state.Point, fill, outline color.Color, width float64) {
	if len(pts) < 3 {
		return
	}
	r.fill(pts, fill)
	for i := range pts {
		r.Line(pts[i], pts[(i+1)%len(pts)], outline, width)
	}
}

func (r *Raster) fill(pts []state.Point, c color.Color) {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// segment turns a line into the quad covering it at the given width.
func segment(from, to state.Point, width float64) []state.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	return []state.Point{
		{X: from.X + nx, Y: from.Y + ny},
		{X: to.X + nx, Y: to.Y + ny},
		{X: to.X - nx, Y: to.Y - ny},
		{X: from.X - nx, Y: from.Y - ny},
	}
}

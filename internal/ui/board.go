package ui

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"TurtleBoard/internal/render"
	"TurtleBoard/internal/state"
)

var (
	lightPaper = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	darkPaper  = color.RGBA{R: 245, G: 246, B: 248, A: 255}
)

// BoardWidget shows the turtle's canvas. The playback goroutine draws into a
// back buffer; every finished frame is copied and handed to the renderer on
// the UI goroutine.
type BoardWidget struct {
	widget.BaseWidget
	mu    sync.Mutex
	back  *render.Raster
	image *canvas.Image
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ state.Surface = (*BoardWidget)(nil)
var _ state.Flusher = (*BoardWidget)(nil)

func NewBoardWidget() *BoardWidget {
	b := &BoardWidget{back: render.NewRaster(state.CanvasSize, lightPaper)}
	b.image = canvas.NewImageFromImage(b.frame())
	b.image.FillMode = canvas.ImageFillContain
	b.image.SetMinSize(fyne.NewSize(state.CanvasSize, state.CanvasSize))
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.image)
}

func (b *BoardWidget) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.back.Clear()
}

func (b *BoardWidget) Line(from, to state.Point, c color.Color, width float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.back.Line(from, to, c, width)
}

func (b *BoardWidget) Polygon(pts []state.Point, fill, outline color.Color, width float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.back.Polygon(pts, fill, outline, width)
}

// Flush publishes the back buffer.
func (b *BoardWidget) Flush() {
	frame := b.frame()
	fyne.Do(func() {
		b.image.Image = frame
		b.image.Refresh()
	})
}

// SetDark switches the paper color; it shows on the next redraw.
func (b *BoardWidget) SetDark(dark bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if dark {
		b.back.SetBackground(darkPaper)
	} else {
		b.back.SetBackground(lightPaper)
	}
}

// Frame returns the image currently on screen.
func (b *BoardWidget) Frame() image.Image {
	return b.image.Image
}

func (b *BoardWidget) frame() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	src := b.back.Image()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

package export

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"

	"TurtleBoard/internal/render"
	"TurtleBoard/internal/state"
)

// WritePNG renders the drawing onto a white canvas and encodes it as PNG.
func WritePNG(w io.Writer, d *state.Drawing) error {
	r := render.NewRaster(state.CanvasSize, color.White)
	d.Redraw(r)
	if err := png.Encode(w, r.Image()); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}

func ExportPNG(path string, d *state.Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	if err := WritePNG(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

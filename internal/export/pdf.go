package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"TurtleBoard/internal/state"
)

// PDF is a Surface backed by a single gofpdf page the size of the canvas,
// measured in points so canvas pixels map 1:1.
type PDF struct {
	p    *gofpdf.Fpdf
	size float64
}

func NewPDF(size float64) *PDF {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: size, Ht: size},
	})
	p.SetTitle("TurtleBoard drawing", true)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	return &PDF{p: p, size: size}
}

func (d *PDF) Clear() {
	d.p.SetFillColor(255, 255, 255)
	d.p.Rect(0, 0, d.size, d.size, "F")
}

func (d *PDF) Line(from, to state.Point, c color.Color, width float64) {
	d.p.SetDrawColor(rgb(c))
	d.p.SetLineWidth(width)
	d.p.Line(from.X, from.Y, to.X, to.Y)
}

func (d *PDF) Polygon(pts []state.Point, fill, outline color.Color, width float64) {
	poly := make([]gofpdf.PointType, len(pts))
	for i, pt := range pts {
		poly[i] = gofpdf.PointType{X: pt.X, Y: pt.Y}
	}
	d.p.SetFillColor(rgb(fill))
	d.p.SetDrawColor(rgb(outline))
	d.p.SetLineWidth(width)
	d.p.Polygon(poly, "FD")
}

func (d *PDF) Output(w io.Writer) error {
	if err := d.p.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

// WritePDF renders the drawing as a one-page PDF.
func WritePDF(w io.Writer, d *state.Drawing) error {
	doc := NewPDF(state.CanvasSize)
	d.Redraw(doc)
	return doc.Output(w)
}

func ExportPDF(path string, d *state.Drawing) error {
	doc := NewPDF(state.CanvasSize)
	d.Redraw(doc)
	if err := doc.p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

package renderer

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVGCanvas writes the drawing commands of one frame as an SVG document.
type SVGCanvas struct {
	svg           *svg.SVG
	width, height int
	background    color.RGBA
	xs, ys        []int
}

// NewSVGCanvas starts an SVG document of the given size on w.
// Close must be called to finish the document.
func NewSVGCanvas(w io.Writer, width, height int, bg color.RGBA) *SVGCanvas {
	c := &SVGCanvas{
		svg:        svg.New(w),
		width:      width,
		height:     height,
		background: bg,
	}
	c.svg.Start(width, height)
	c.svg.Title("flowfield")
	return c
}

// Clear paints the background rectangle.
func (c *SVGCanvas) Clear() {
	c.svg.Rect(0, 0, c.width, c.height, "fill:"+hexColor(c.background))
}

// BeginPath discards any unstroked path.
func (c *SVGCanvas) BeginPath() {
	c.xs = c.xs[:0]
	c.ys = c.ys[:0]
}

// MoveTo starts the path at (x, y).
func (c *SVGCanvas) MoveTo(x, y float64) {
	c.xs = append(c.xs[:0], round(x))
	c.ys = append(c.ys[:0], round(y))
}

// LineTo extends the path to (x, y).
func (c *SVGCanvas) LineTo(x, y float64) {
	c.xs = append(c.xs, round(x))
	c.ys = append(c.ys, round(y))
}

// Stroke emits the path as a polyline. Single-point paths draw nothing.
func (c *SVGCanvas) Stroke(col color.RGBA, width float64) {
	if len(c.xs) > 1 {
		c.svg.Polyline(c.xs, c.ys, strokeStyle(col, width))
	}
	c.xs = c.xs[:0]
	c.ys = c.ys[:0]
}

// FillText emits a text element centred on (x, y).
func (c *SVGCanvas) FillText(text string, x, y, size float64, col color.RGBA) {
	style := fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%gpx;text-anchor:middle;dominant-baseline:middle",
		hexColor(col), size)
	c.svg.Text(round(x), round(y), text, style)
}

// Close finishes the document.
func (c *SVGCanvas) Close() error {
	c.svg.End()
	return nil
}

func strokeStyle(col color.RGBA, width float64) string {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round", hexColor(col), width)
	if col.A < 255 {
		style += fmt.Sprintf(";stroke-opacity:%.3f", float64(col.A)/255)
	}
	return style
}

func round(v float64) int {
	return int(math.Round(v))
}

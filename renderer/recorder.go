package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Stroke is one stroked path captured by a Recorder.
type Stroke struct {
	Points []r2.Vec
	Color  color.RGBA
	Width  float64
}

// Text is one text draw captured by a Recorder.
type Text struct {
	Text  string
	X, Y  float64
	Size  float64
	Color color.RGBA
}

// Recorder is a canvas that keeps the drawing commands of the current frame.
// Used for headless runs and tests. Clear starts a new frame.
type Recorder struct {
	Clears  int
	Strokes []Stroke
	Texts   []Text

	// Segments counts line segments stroked since the last Clear.
	Segments int

	keep bool
	path []r2.Vec
}

// NewRecorder creates a recorder. When keep is false only counters are
// maintained and stroked points are discarded.
func NewRecorder(keep bool) *Recorder {
	return &Recorder{keep: keep}
}

// Clear starts a new frame.
func (r *Recorder) Clear() {
	r.Clears++
	r.Strokes = r.Strokes[:0]
	r.Texts = r.Texts[:0]
	r.Segments = 0
}

// BeginPath discards any unstroked path.
func (r *Recorder) BeginPath() {
	r.path = r.path[:0]
}

// MoveTo starts the path at (x, y).
func (r *Recorder) MoveTo(x, y float64) {
	r.path = append(r.path[:0], r2.Vec{X: x, Y: y})
}

// LineTo extends the path to (x, y).
func (r *Recorder) LineTo(x, y float64) {
	r.path = append(r.path, r2.Vec{X: x, Y: y})
}

// Stroke records the current path.
func (r *Recorder) Stroke(c color.RGBA, width float64) {
	if len(r.path) > 1 {
		r.Segments += len(r.path) - 1
	}
	if r.keep {
		pts := make([]r2.Vec, len(r.path))
		copy(pts, r.path)
		r.Strokes = append(r.Strokes, Stroke{Points: pts, Color: c, Width: width})
	}
	r.path = r.path[:0]
}

// FillText records a text draw.
func (r *Recorder) FillText(text string, x, y, size float64, c color.RGBA) {
	if r.keep {
		r.Texts = append(r.Texts, Text{Text: text, X: x, Y: y, Size: size, Color: c})
	}
}

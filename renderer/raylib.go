package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibCanvas draws onto the current raylib render target.
// Must be used between rl.BeginDrawing and rl.EndDrawing.
type RaylibCanvas struct {
	background rl.Color
	path       []rl.Vector2
}

// NewRaylibCanvas creates a canvas that clears to bg.
func NewRaylibCanvas(bg color.RGBA) *RaylibCanvas {
	return &RaylibCanvas{
		background: toRL(bg),
		path:       make([]rl.Vector2, 0, 256),
	}
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Clear fills the window with the background colour.
func (c *RaylibCanvas) Clear() {
	rl.ClearBackground(c.background)
}

// BeginPath discards any unstroked path.
func (c *RaylibCanvas) BeginPath() {
	c.path = c.path[:0]
}

// MoveTo starts the path at (x, y).
func (c *RaylibCanvas) MoveTo(x, y float64) {
	c.path = append(c.path[:0], rl.Vector2{X: float32(x), Y: float32(y)})
}

// LineTo extends the path to (x, y).
func (c *RaylibCanvas) LineTo(x, y float64) {
	c.path = append(c.path, rl.Vector2{X: float32(x), Y: float32(y)})
}

// Stroke draws the path as connected line segments.
func (c *RaylibCanvas) Stroke(col color.RGBA, width float64) {
	rc := toRL(col)
	w := float32(width)
	for i := 1; i < len(c.path); i++ {
		rl.DrawLineEx(c.path[i-1], c.path[i], w, rc)
	}
	c.path = c.path[:0]
}

// FillText draws text centred on (x, y) with the default font.
func (c *RaylibCanvas) FillText(text string, x, y, size float64, col color.RGBA) {
	fontSize := int32(size)
	textWidth := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(x)-textWidth/2, int32(y)-fontSize/2, fontSize, toRL(col))
}

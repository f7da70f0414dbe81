package systems

import "image/color"

// Canvas is the drawing surface the effect renders onto.
// Implemented by the renderer package (raylib window, terminal, SVG, recorder).
type Canvas interface {
	// Clear wipes the whole surface.
	Clear()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke draws the current path and discards it.
	Stroke(c color.RGBA, width float64)
	// FillText draws text centred on (x, y).
	FillText(text string, x, y, size float64, c color.RGBA)
}

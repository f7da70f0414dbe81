package ui

import (
	"fmt"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	FPS          int32
	Frame        int64
	Particles    int
	Active       int
	Generation   uint64
	Cols, Rows   int
	ScreenWidth  int32
	ScreenHeight int32
	AvgTickUS    int64
	Segments     int
	NSPerSegment int64
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD panel with its top-left corner at (x, y).
func (h *HUD) Draw(x, y, width int32, data HUDData) {
	r := h.renderer
	padding := r.Theme.Padding
	height := 7*r.Theme.LineHeight + 2*padding
	r.DrawPanel(x, y, width, height)

	lx := x + padding
	ly := y + padding
	ly = r.DrawLabelValue(lx, ly, "FPS", fmt.Sprintf("%d (%d us)", data.FPS, data.AvgTickUS))
	ly = r.DrawLabelValue(lx, ly, "Frame", fmt.Sprintf("%d", data.Frame))
	ly = r.DrawLabelValue(lx, ly, "Particles", fmt.Sprintf("%d (%d moving)", data.Particles, data.Active))
	ly = r.DrawLabelValue(lx, ly, "Segments", fmt.Sprintf("%d (%d ns each)", data.Segments, data.NSPerSegment))
	ly = r.DrawLabelValue(lx, ly, "Grid", fmt.Sprintf("%dx%d", data.Cols, data.Rows))
	ly = r.DrawLabelValue(lx, ly, "Field gen", fmt.Sprintf("%d", data.Generation))
	r.DrawLabelValue(lx, ly, "Surface", fmt.Sprintf("%dx%d", data.ScreenWidth, data.ScreenHeight))
}

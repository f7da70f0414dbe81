package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider ranges for field shaping.
const (
	MinZoom  = 0.001
	MaxZoom  = 0.5
	MinCurve = 0.1
	MaxCurve = 20
)

// PanelState is the set of values the controls panel edits.
type PanelState struct {
	Zoom  float64
	Curve float64
	Debug bool
}

// ControlsPanel renders the field shaping sliders and the grid toggle.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the state after user interaction.
// Returns the bottom Y of the panel so other widgets can stack below it.
func (c *ControlsPanel) Draw(state PanelState) (PanelState, int32) {
	if !c.visible {
		return state, c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	panelHeight := int32(170)
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := c.y + padding
	sliderW := float32(c.width - 2*padding - 50)

	y = r.DrawSectionHeader(c.x+padding, y, "Flow field")
	y += 4

	// Zoom slider
	rl.DrawText("Zoom", int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	zoom := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", "",
		float32(state.Zoom), MinZoom, MaxZoom,
	)
	rl.DrawText(fmt.Sprintf("%.3f", state.Zoom), int32(x+sliderW+6), y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if zoom != float32(state.Zoom) {
		state.Zoom = float64(zoom)
	}
	y += 26

	// Curve slider
	rl.DrawText("Curve", int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	curve := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
		"", "",
		float32(state.Curve), MinCurve, MaxCurve,
	)
	rl.DrawText(fmt.Sprintf("%.2f", state.Curve), int32(x+sliderW+6), y+2, r.Theme.FontSize, r.Theme.ValueColor)
	if curve != float32(state.Curve) {
		state.Curve = float64(curve)
	}
	y += 30

	// Grid toggle
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: 120, Height: 24}, toggleText(state.Debug, "Hide grid", "Show grid")) {
		state.Debug = !state.Debug
	}
	y += 34

	rl.DrawText("F1 panel  D grid", int32(x), y, 10, r.Theme.LabelColor)

	return state, c.y + panelHeight
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// Flow field preview tool - interactive visualization of the angle grid with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewW     = 760
	previewH     = 560
	panelWidth   = windowWidth - previewW - 30
)

// FieldParams holds the flow field shaping parameters.
type FieldParams struct {
	CellSize float32
	Zoom     float32
	Curve    float32
}

func defaultParams() FieldParams {
	cfg := config.Cfg()
	return FieldParams{
		CellSize: float32(cfg.Field.CellSize),
		Zoom:     float32(cfg.Field.Zoom),
		Curve:    float32(cfg.Field.Curve),
	}
}

func main() {
	config.MustInit("")

	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	field := generate(params)
	showAngles := false

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawRectangle(10, 10, previewW, previewH, rl.Black)
		drawArrows(field, 10, 10, showAngles)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		// Draw stats
		minVal, maxVal, avg := angleStats(field)
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d  Cells: %d", field.Cols(), field.Rows(), field.Len()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Angle min: %.2f  max: %.2f  avg: %.2f (rad)", minVal, maxVal, avg), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false

		// Cell size slider
		rl.DrawText("Cell size (surface units)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCell := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			params.CellSize, 5, 80,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.CellSize), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float32(math.Round(float64(newCell))) != params.CellSize {
			params.CellSize = float32(math.Round(float64(newCell)))
			changed = true
		}
		panelY += 35

		// Zoom slider
		rl.DrawText("Zoom (spatial frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newZoom := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			params.Zoom, 0.001, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.Zoom), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newZoom != params.Zoom {
			params.Zoom = newZoom
			changed = true
		}
		panelY += 35

		// Curve slider
		rl.DrawText("Curve (angle amplitude)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCurve := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			params.Curve, 0.1, 20,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Curve), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newCurve != params.Curve {
			params.Curve = newCurve
			changed = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showAngles, "Hide angles", "Show angles")) {
			showAngles = !showAngles
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			changed = true
		}
		panelY += 55

		if changed {
			field = generate(params)
		}

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := yamlSnippet(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func generate(p FieldParams) *systems.FlowField {
	return systems.GenerateFlowField(previewW, previewH, float64(p.CellSize), float64(p.Zoom), float64(p.Curve))
}

func yamlSnippet(p FieldParams) string {
	return fmt.Sprintf("field:\n  cell_size: %.0f\n  zoom: %.3f\n  curve: %.2f", p.CellSize, p.Zoom, p.Curve)
}

// drawArrows draws one arrow per cell pointing along the cell's angle.
func drawArrows(f *systems.FlowField, ox, oy int32, labels bool) {
	cs := f.CellSize()
	values := f.Values()
	length := float32(cs) * 0.4

	for row := 0; row < f.Rows(); row++ {
		for col := 0; col < f.Cols(); col++ {
			angle := values[row*f.Cols()+col]
			cx := float32(ox) + float32((float64(col)+0.5)*cs)
			cy := float32(oy) + float32((float64(row)+0.5)*cs)
			dx := float32(math.Cos(angle)) * length
			dy := float32(math.Sin(angle)) * length

			tail := rl.Vector2{X: cx - dx, Y: cy - dy}
			head := rl.Vector2{X: cx + dx, Y: cy + dy}
			c := angleColor(angle)
			rl.DrawLineEx(tail, head, 1.5, c)
			rl.DrawCircleV(head, 2, c)

			if labels && cs >= 30 {
				rl.DrawText(fmt.Sprintf("%.1f", angle), int32(cx)-8, int32(cy)+4, 10, rl.Gray)
			}
		}
	}
}

// angleColor maps an angle onto the hue wheel.
func angleColor(angle float64) rl.Color {
	hue := math.Mod(angle, 2*math.Pi)
	if hue < 0 {
		hue += 2 * math.Pi
	}
	return rl.ColorFromHSV(float32(hue*180/math.Pi), 0.7, 0.95)
}

func angleStats(f *systems.FlowField) (minVal, maxVal, avg float64) {
	values := f.Values()
	if len(values) == 0 {
		return 0, 0, 0
	}
	minVal, maxVal = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal, sum / float64(len(values))
}

package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (w *window) handleInput() {
	// Window resize propagation
	w.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Debug grid toggle
	if rl.IsKeyPressed(rl.KeyD) {
		w.game.Post(ToggleDebugEvent{})
	}

	// Controls panel toggle
	if rl.IsKeyPressed(rl.KeyF1) {
		w.panel.Toggle()
	}
}

// handleResize checks for window resize and posts the new dimensions.
func (w *window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := int32(rl.GetScreenWidth())
	height := int32(rl.GetScreenHeight())
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height

	w.game.Post(ResizeEvent{Width: float64(width), Height: float64(height)})
}

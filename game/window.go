package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/ui"
)

// RunWindow opens a raylib window and animates g until the window is closed
// or maxTicks frames have run (0 = unlimited). g must draw onto a
// renderer.RaylibCanvas.
func RunWindow(g *Game, title string, maxTicks int) {
	cfg := g.cfg
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w := &window{
		game:   g,
		panel:  ui.NewControlsPanel(10, 10, 240),
		hud:    ui.NewHUD(),
		width:  int32(rl.GetScreenWidth()),
		height: int32(rl.GetScreenHeight()),
	}

	// The window may open at a different size than requested
	g.Post(ResizeEvent{Width: float64(w.width), Height: float64(w.height)})

	for !rl.WindowShouldClose() {
		w.handleInput()

		g.perfCollector.RecordFrame()
		rl.BeginDrawing()
		g.Tick()
		w.drawOverlay()
		rl.EndDrawing()

		if maxTicks > 0 && g.Frame() >= int64(maxTicks) {
			break
		}
	}
}

// window holds the raylib front end state around a Game.
type window struct {
	game  *Game
	panel *ui.ControlsPanel
	hud   *ui.HUD

	width, height int32
}

// drawOverlay draws the controls panel and HUD and posts any changes made
// through them.
func (w *window) drawOverlay() {
	if !w.panel.IsVisible() {
		return
	}

	g := w.game
	params := g.system.Params()
	before := ui.PanelState{Zoom: params.Zoom, Curve: params.Curve, Debug: g.debug}
	after, bottom := w.panel.Draw(before)

	if after.Zoom != before.Zoom || after.Curve != before.Curve {
		g.Post(RetuneEvent{Zoom: after.Zoom, Curve: after.Curve})
	}
	if after.Debug != before.Debug {
		g.Post(ToggleDebugEvent{})
	}

	st := g.system.Stats()
	perf := g.PerfStats()
	w.hud.Draw(10, bottom+10, 240, ui.HUDData{
		FPS:          rl.GetFPS(),
		Frame:        g.frame,
		Particles:    st.Particles,
		Active:       st.Active,
		Generation:   st.Generation,
		Cols:         st.Cols,
		Rows:         st.Rows,
		ScreenWidth:  w.width,
		ScreenHeight: w.height,
		AvgTickUS:    perf.AvgTick.Microseconds(),
		Segments:     int(perf.SegmentsPerFrame),
		NSPerSegment: perf.RenderPerSegment.Nanoseconds(),
	})
}

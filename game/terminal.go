package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flowfield/renderer"
)

// RunTerminal animates g on a terminal until ctx is done, maxTicks frames
// have been rendered (0 = unlimited) or the user quits with q, Esc or Ctrl-C.
// The d key toggles the grid overlay. The canvas must be the one g draws onto.
func RunTerminal(ctx context.Context, g *Game, canvas *renderer.TerminalCanvas, frame time.Duration, maxTicks int) {
	if frame <= 0 {
		frame = 33 * time.Millisecond
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	screen := canvas.Screen()
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalised
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-eventChan:
			if !handleTerminalEvent(g, canvas, ev) {
				return
			}

		case <-ticker.C:
			g.perfCollector.RecordFrame()
			g.Tick()
			canvas.Show()
			if maxTicks > 0 && g.Frame() >= int64(maxTicks) {
				return
			}
		}
	}
}

// handleTerminalEvent posts events for key presses and resizes.
// Returns false when the user asked to quit.
func handleTerminalEvent(g *Game, canvas *renderer.TerminalCanvas, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'd', 'D':
				g.Post(ToggleDebugEvent{})
			}
		}

	case *tcell.EventResize:
		canvas.Screen().Sync()
		w, h := canvas.SurfaceSize()
		g.Post(ResizeEvent{Width: w, Height: h})
	}

	return true
}

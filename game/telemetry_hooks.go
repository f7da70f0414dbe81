package game

import (
	"log/slog"

	"github.com/pthm-cable/flowfield/systems"
)

// countingCanvas counts the line segments stroked during a frame.
type countingCanvas struct {
	systems.Canvas
	segments int
}

func (c *countingCanvas) LineTo(x, y float64) {
	c.segments++
	c.Canvas.LineTo(x, y)
}

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame, g.system.Stats())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if err := g.outputManager.WriteWindow(stats, perfStats); err != nil {
		slog.Warn("failed to write telemetry window", "error", err)
	}
}

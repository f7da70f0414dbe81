// Package game drives the flow field effect frame by frame and wires it to
// windowed, terminal and headless front ends.
package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/renderer"
	"github.com/pthm-cable/flowfield/systems"
	"github.com/pthm-cable/flowfield/telemetry"
)

// Ticker advances an animation by one frame.
type Ticker interface {
	Tick()
}

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed      int64
	Width     float64 // Initial surface width (0 = config screen width)
	Height    float64 // Initial surface height (0 = config screen height)
	Debug     bool    // Start with the grid overlay shown
	LogStats  bool    // Log window stats via slog
	OutputDir string  // Directory for CSV logs and config snapshot (empty = disabled)
}

// Game holds the complete effect state.
type Game struct {
	cfg    *config.Config
	system *systems.ParticleSystem
	canvas *countingCanvas
	inbox  inbox

	// State
	debug bool
	frame int64

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
}

// NewGame creates a game drawing onto canvas and initialises the particle
// system for the starting surface size.
func NewGame(cfg *config.Config, canvas systems.Canvas, opts Options) (*Game, error) {
	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config", "error", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:           cfg,
		system:        systems.NewParticleSystem(systems.ParamsFromConfig(cfg), rng),
		canvas:        &countingCanvas{Canvas: canvas},
		debug:         opts.Debug || cfg.Debug.Enabled,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		outputManager: om,
		logStats:      opts.LogStats,
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Derived.ScreenW, cfg.Derived.ScreenH
	}
	g.system.Init(width, height)

	return g, nil
}

// Post queues an event for the next frame. Safe for concurrent use.
func (g *Game) Post(e Event) {
	g.inbox.push(e)
}

// Tick applies pending events, then clears the surface and renders one frame.
func (g *Game) Tick() {
	g.perfCollector.Begin()

	g.perfCollector.Phase(telemetry.PhaseInbox)
	for _, e := range g.inbox.drain() {
		e.apply(g)
	}

	g.perfCollector.Phase(telemetry.PhaseClear)
	g.canvas.Clear()
	g.drawText(g.canvas)

	g.perfCollector.Phase(telemetry.PhaseRender)
	g.canvas.segments = 0
	g.system.Render(g.canvas, g.debug)

	g.perfCollector.Phase(telemetry.PhaseTelemetry)
	g.frame++
	g.collector.RecordFrame(g.canvas.segments)
	g.flushTelemetry()

	g.perfCollector.End(g.canvas.segments)
}

// drawText draws the decorative background text centred on the surface.
func (g *Game) drawText(c systems.Canvas) {
	t := g.cfg.Text
	if !t.Enabled || t.Content == "" {
		return
	}
	w, h := g.system.Size()
	c.FillText(t.Content, w/2, h/2, t.Size, g.cfg.Derived.TextColor)
}

// Snapshot writes the current frame as an SVG document without advancing it.
func (g *Game) Snapshot(w io.Writer) error {
	width, height := g.system.Size()
	svg := renderer.NewSVGCanvas(w, int(width), int(height), g.cfg.Derived.Background)
	svg.Clear()
	g.drawText(svg)
	g.system.Draw(svg, g.debug)
	if err := svg.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// System returns the particle system.
func (g *Game) System() *systems.ParticleSystem { return g.system }

// Debug reports whether the grid overlay is shown.
func (g *Game) Debug() bool { return g.debug }

// Frame returns the number of frames rendered.
func (g *Game) Frame() int64 { return g.frame }

// PerfStats returns performance statistics for the recent frames.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}

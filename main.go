package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/game"
	"github.com/pthm-cable/flowfield/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshot := flag.String("snapshot", "", "Write the final frame as SVG to this path")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	debug := flag.Bool("debug", false, "Start with the grid overlay shown")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging).
	// The terminal front end owns stdout, so it logs to a file or nowhere.
	var logOut io.Writer = os.Stdout
	if *terminal {
		logOut = io.Discard
		if *outputDir != "" {
			f, err := openLogFile(*outputDir)
			if err != nil {
				slog.Error("failed to open log file", "error", err)
				os.Exit(1)
			}
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		Debug:     *debug,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		g   *game.Game
		err error
	)
	switch {
	case *headless:
		g, err = runHeadless(ctx, cfg, opts, *maxTicks)
	case *terminal:
		g, err = runTerminal(ctx, cfg, opts, *maxTicks)
	default:
		g, err = runWindow(cfg, opts, *maxTicks)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	if err := finish(g, *snapshot); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

// finish writes the optional final-frame snapshot, then closes the game's
// telemetry output whether or not the snapshot succeeded.
func finish(g *game.Game, snapshotPath string) error {
	var snapErr error
	if snapshotPath != "" {
		if snapErr = writeSnapshot(g, snapshotPath); snapErr == nil {
			slog.Info("snapshot saved", "path", snapshotPath, "frame", g.Frame())
		}
	}
	if err := g.Close(); err != nil {
		return errors.Join(snapErr, fmt.Errorf("closing output: %w", err))
	}
	return snapErr
}

func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int) (*game.Game, error) {
	g, err := game.NewGame(cfg, renderer.NewRecorder(false), opts)
	if err != nil {
		return nil, err
	}

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"particles", cfg.Particles.Count,
		"max_ticks", maxTicks,
	)

	n := game.RunHeadless(ctx, g, maxTicks)
	slog.Info("headless run finished", "frames", n, "perf", g.PerfStats())
	return g, nil
}

func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int) (*game.Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	canvas := renderer.NewTerminalCanvas(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, cfg.Derived.Background)
	opts.Width, opts.Height = canvas.SurfaceSize()

	g, err := game.NewGame(cfg, canvas, opts)
	if err != nil {
		return nil, err
	}

	game.RunTerminal(ctx, g, canvas, time.Duration(cfg.Terminal.FrameMS)*time.Millisecond, maxTicks)
	return g, nil
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int) (*game.Game, error) {
	g, err := game.NewGame(cfg, renderer.NewRaylibCanvas(cfg.Derived.Background), opts)
	if err != nil {
		return nil, err
	}
	game.RunWindow(g, "Flow Field", maxTicks)
	return g, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return os.Create(filepath.Join(dir, "flowfield.log"))
}

func writeSnapshot(g *game.Game, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if err := g.Snapshot(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

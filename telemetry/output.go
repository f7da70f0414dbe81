package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flowfield/config"
)

// csvLog appends gocsv records to one file, writing the header with the first row.
type csvLog struct {
	name   string
	f      *os.File
	headed bool
}

func createLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, f: f}, nil
}

func (l *csvLog) append(records any) error {
	var err error
	if l.headed {
		err = gocsv.MarshalWithoutHeaders(records, l.f)
	} else {
		err = gocsv.Marshal(records, l.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.headed = true
	return nil
}

// OutputManager writes a run's config snapshot and per-window CSV logs.
// A nil manager discards everything.
type OutputManager struct {
	dir   string
	stats *csvLog // stats.csv, one WindowStats row per window
	perf  *csvLog // perf.csv, one PerfRow per window
}

// NewOutputManager creates dir and the CSV logs inside it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stats, err := createLog(dir, "stats.csv")
	if err != nil {
		return nil, err
	}
	perf, err := createLog(dir, "perf.csv")
	if err != nil {
		stats.f.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, stats: stats, perf: perf}, nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends a flushed stats window to stats.csv and the frame
// timing at its end to perf.csv. Both rows share the window's end frame.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfStats) error {
	if om == nil {
		return nil
	}
	return errors.Join(
		om.stats.append([]WindowStats{stats}),
		om.perf.append([]PerfRow{perf.Row(stats.WindowEndFrame)}),
	)
}

// Close closes both CSV logs.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.stats.f.Close(), om.perf.f.Close())
}

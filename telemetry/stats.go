package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64 `csv:"-"`
	WindowEndFrame   int64 `csv:"window_end"`

	// Population at window end
	Particles int `csv:"particles"`
	Active    int `csv:"active"`
	Expired   int `csv:"expired"`
	Collapsed int `csv:"collapsed"`

	// Events during window
	Respawns uint64 `csv:"respawns"`
	Resizes  int    `csv:"resizes"`
	Retunes  int    `csv:"retunes"`

	// Flow field at window end
	Generation uint64 `csv:"generation"`
	Cols       int    `csv:"cols"`
	Rows       int    `csv:"rows"`

	// Trail length distribution (sampled at window end)
	TrailMean float64 `csv:"trail_mean"`
	TrailStd  float64 `csv:"trail_std"`
	TrailP10  float64 `csv:"trail_p10"`
	TrailP50  float64 `csv:"trail_p50"`
	TrailP90  float64 `csv:"trail_p90"`

	// Drawing load
	SegmentsPerFrame float64 `csv:"segments_per_frame"`
}

// ComputeTrailStats calculates mean, standard deviation and percentiles of trail lengths.
func ComputeTrailStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n > 1 {
		mean, std = stat.MeanStdDev(sorted, nil)
	} else {
		mean = sorted[0]
	}

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Int("particles", s.Particles),
		slog.Int("active", s.Active),
		slog.Int("expired", s.Expired),
		slog.Int("collapsed", s.Collapsed),
		slog.Uint64("respawns", s.Respawns),
		slog.Int("resizes", s.Resizes),
		slog.Int("retunes", s.Retunes),
		slog.Uint64("generation", s.Generation),
		slog.Int("cols", s.Cols),
		slog.Int("rows", s.Rows),
		slog.Float64("trail_mean", s.TrailMean),
		slog.Float64("trail_std", s.TrailStd),
		slog.Float64("trail_p10", s.TrailP10),
		slog.Float64("trail_p50", s.TrailP50),
		slog.Float64("trail_p90", s.TrailP90),
		slog.Float64("segments_per_frame", s.SegmentsPerFrame),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"particles", s.Particles,
		"active", s.Active,
		"expired", s.Expired,
		"respawns", s.Respawns,
		"generation", s.Generation,
		"trail_mean", s.TrailMean,
		"trail_p50", s.TrailP50,
	)
}

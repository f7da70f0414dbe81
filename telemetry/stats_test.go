package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/flowfield/systems"
)

func TestComputeTrailStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		mean     float64
		std      float64
		p50      float64
		p10, p90 float64
	}{
		{"empty slice", []float64{}, 0, 0, 0, 0, 0},
		{"single element", []float64{7}, 7, 0, 7, 7, 7},
		{"unsorted odd", []float64{5, 1, 3}, 3, 2, 3, 1, 5},
		{"constant", []float64{4, 4, 4, 4}, 4, 0, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p10, p50, p90 := ComputeTrailStats(tt.values)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if p10 != tt.p10 || p50 != tt.p50 || p90 != tt.p90 {
				t.Errorf("percentiles = %v/%v/%v, want %v/%v/%v", p10, p50, p90, tt.p10, tt.p50, tt.p90)
			}
		})
	}
}

func TestComputeTrailStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{9, 3, 7, 1}
	ComputeTrailStats(values)

	if values[0] != 9 || values[1] != 3 || values[2] != 7 || values[3] != 1 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestComputeTrailStatsOrdering(t *testing.T) {
	values := make([]float64, 0, 200)
	for i := 10; i < 210; i++ {
		values = append(values, float64(i))
	}

	_, _, p10, p50, p90 := ComputeTrailStats(values)
	if !(p10 <= p50 && p50 <= p90) {
		t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
	}
	if p10 < 10 || p90 > 209 {
		t.Errorf("percentiles outside data range: %v %v", p10, p90)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("should not flush before window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at window end")
	}

	c.RecordResize()
	c.RecordRetune()
	c.RecordRetune()
	for i := 0; i < 10; i++ {
		c.RecordFrame(100)
	}

	st := systems.SystemStats{
		Particles:    3,
		Active:       2,
		Expired:      1,
		Respawns:     5,
		TrailLengths: []float64{1, 2, 3},
		Generation:   4,
		Cols:         40,
		Rows:         30,
	}
	ws := c.Flush(10, st)

	if ws.WindowStartFrame != 0 || ws.WindowEndFrame != 10 {
		t.Errorf("unexpected window %d-%d", ws.WindowStartFrame, ws.WindowEndFrame)
	}
	if ws.Resizes != 1 || ws.Retunes != 2 {
		t.Errorf("unexpected event counts: resizes %d retunes %d", ws.Resizes, ws.Retunes)
	}
	if ws.Respawns != 5 {
		t.Errorf("expected 5 respawns, got %d", ws.Respawns)
	}
	if ws.SegmentsPerFrame != 100 {
		t.Errorf("expected 100 segments per frame, got %v", ws.SegmentsPerFrame)
	}
	if ws.TrailMean != 2 || ws.TrailP50 != 2 {
		t.Errorf("unexpected trail stats mean %v p50 %v", ws.TrailMean, ws.TrailP50)
	}
	if ws.Generation != 4 || ws.Cols != 40 || ws.Rows != 30 {
		t.Errorf("unexpected field info %d %dx%d", ws.Generation, ws.Cols, ws.Rows)
	}

	// Counters reset for the next window
	if c.ShouldFlush(19) {
		t.Error("should not flush before second window ends")
	}
	st.Respawns = 8
	ws = c.Flush(20, st)
	if ws.WindowStartFrame != 10 {
		t.Errorf("expected second window to start at 10, got %d", ws.WindowStartFrame)
	}
	if ws.Respawns != 3 {
		t.Errorf("expected 3 respawns in second window, got %d", ws.Respawns)
	}
	if ws.Resizes != 0 || ws.Retunes != 0 || ws.SegmentsPerFrame != 0 {
		t.Errorf("expected reset counters, got %+v", ws)
	}
}

func TestCollectorRespawnCounterRestart(t *testing.T) {
	c := NewCollector(1)
	c.Flush(1, systems.SystemStats{Respawns: 50})

	// A rebuilt system starts counting from zero again
	ws := c.Flush(2, systems.SystemStats{Respawns: 4})
	if ws.Respawns != 4 {
		t.Errorf("expected 4 respawns after restart, got %d", ws.Respawns)
	}
}

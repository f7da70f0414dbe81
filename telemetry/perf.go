package telemetry

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of a frame.
type Phase int

// Frame stages in execution order.
const (
	PhaseInbox Phase = iota
	PhaseClear
	PhaseRender
	PhaseTelemetry

	phaseCount
)

var phaseNames = [phaseCount]string{"inbox", "clear", "render", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// frameSample is the cost of one frame and the work it did.
type frameSample struct {
	total    time.Duration
	phases   [phaseCount]time.Duration
	segments int
}

// PerfCollector times frame phases over a rolling window of frames.
//
// Usage per frame: Begin, Phase for each stage, End with the number of
// segments stroked.
type PerfCollector struct {
	now func() time.Time

	window []frameSample
	next   int
	filled int

	cur        frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Display pacing, measured between presented frames
	lastPresent time.Time
	interval    time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:    time.Now,
		window: make([]frameSample, windowSize),
	}
}

// Begin starts timing a frame.
func (p *PerfCollector) Begin() {
	p.frameStart = p.now()
	p.cur = frameSample{}
	p.inPhase = false
}

// Phase closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) Phase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < phaseCount {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// End finishes the frame and stores it with the segments it stroked.
func (p *PerfCollector) End(segments int) {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.frameStart)
	p.cur.segments = segments

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks a frame as presented to the display.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarises the frames in the collector window.
type PerfStats struct {
	Frames int

	AvgTick time.Duration
	P95Tick time.Duration
	MaxTick time.Duration

	// Percent of the average frame spent in each phase
	PhasePct [phaseCount]float64

	SegmentsPerFrame float64
	// Render phase cost divided by segments stroked
	RenderPerSegment time.Duration

	TicksPerSecond float64

	FrameInterval time.Duration
	FPS           float64
}

// Pct returns the share of frame time spent in ph.
func (s PerfStats) Pct(ph Phase) float64 {
	if ph < 0 || ph >= phaseCount {
		return 0
	}
	return s.PhasePct[ph]
}

// Stats computes statistics over the frames currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		Frames:        p.filled,
		FrameInterval: p.interval,
	}
	if p.interval > 0 {
		st.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.filled == 0 {
		return st
	}

	totals := make([]float64, p.filled)
	segments := make([]float64, p.filled)
	var phaseSum [phaseCount]float64
	for i, s := range p.window[:p.filled] {
		totals[i] = float64(s.total)
		segments[i] = float64(s.segments)
		for ph, d := range s.phases {
			phaseSum[ph] += float64(d)
		}
	}

	avg := stat.Mean(totals, nil)
	st.AvgTick = time.Duration(avg)
	st.MaxTick = time.Duration(floats.Max(totals))
	sort.Float64s(totals)
	st.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))

	if avg > 0 {
		st.TicksPerSecond = float64(time.Second) / avg
		for ph, sum := range phaseSum {
			st.PhasePct[ph] = sum / float64(p.filled) / avg * 100
		}
	}

	st.SegmentsPerFrame = stat.Mean(segments, nil)
	if total := floats.Sum(segments); total > 0 {
		st.RenderPerSegment = time.Duration(phaseSum[PhaseRender] / total)
	}

	return st
}

func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("segments_per_frame", s.SegmentsPerFrame),
		slog.Int64("render_ns_per_segment", s.RenderPerSegment.Nanoseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", pct))
		}
	}
	return attrs
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// PerfRow is one perf.csv record.
type PerfRow struct {
	WindowEnd          int64   `csv:"window_end"`
	Frames             int     `csv:"frames"`
	AvgTickUS          int64   `csv:"avg_tick_us"`
	P95TickUS          int64   `csv:"p95_tick_us"`
	MaxTickUS          int64   `csv:"max_tick_us"`
	SegmentsPerFrame   float64 `csv:"segments_per_frame"`
	RenderNSPerSegment int64   `csv:"render_ns_per_segment"`
	TicksPerSec        float64 `csv:"ticks_per_sec"`
	FPS                float64 `csv:"fps"`
	InboxPct           float64 `csv:"inbox_pct"`
	ClearPct           float64 `csv:"clear_pct"`
	RenderPct          float64 `csv:"render_pct"`
	TelemetryPct       float64 `csv:"telemetry_pct"`
}

// Row flattens the stats into a perf.csv record for the window ending at windowEnd.
func (s PerfStats) Row(windowEnd int64) PerfRow {
	return PerfRow{
		WindowEnd:          windowEnd,
		Frames:             s.Frames,
		AvgTickUS:          s.AvgTick.Microseconds(),
		P95TickUS:          s.P95Tick.Microseconds(),
		MaxTickUS:          s.MaxTick.Microseconds(),
		SegmentsPerFrame:   s.SegmentsPerFrame,
		RenderNSPerSegment: s.RenderPerSegment.Nanoseconds(),
		TicksPerSec:        s.TicksPerSecond,
		FPS:                s.FPS,
		InboxPct:           s.PhasePct[PhaseInbox],
		ClearPct:           s.PhasePct[PhaseClear],
		RenderPct:          s.PhasePct[PhaseRender],
		TelemetryPct:       s.PhasePct[PhaseTelemetry],
	}
}

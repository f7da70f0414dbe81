package telemetry

import "github.com/pthm-cable/flowfield/systems"

// Collector accumulates events within windows of frames and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStartFrame int64
	respawnsAtStart  uint64

	// Event counters for current window
	resizes  int
	retunes  int
	frames   int
	segments int64
}

// NewCollector creates a new stats collector.
// windowFrames: how many frames each stats window covers.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordResize records a surface resize.
func (c *Collector) RecordResize() {
	c.resizes++
}

// RecordRetune records a change of field shaping.
func (c *Collector) RecordRetune() {
	c.retunes++
}

// RecordFrame records one rendered frame and the line segments it stroked.
func (c *Collector) RecordFrame(segments int) {
	c.frames++
	c.segments += int64(segments)
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int64) bool {
	return currentFrame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats from the population snapshot and resets
// counters for the next window.
func (c *Collector) Flush(currentFrame int64, st systems.SystemStats) WindowStats {
	mean, std, p10, p50, p90 := ComputeTrailStats(st.TrailLengths)

	// Respawn counter is cumulative and restarts when a resize rebuilds the system
	var respawns uint64
	if st.Respawns >= c.respawnsAtStart {
		respawns = st.Respawns - c.respawnsAtStart
	} else {
		respawns = st.Respawns
	}

	var segmentsPerFrame float64
	if c.frames > 0 {
		segmentsPerFrame = float64(c.segments) / float64(c.frames)
	}

	ws := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		Particles:        st.Particles,
		Active:           st.Active,
		Expired:          st.Expired,
		Collapsed:        st.Collapsed,
		Respawns:         respawns,
		Resizes:          c.resizes,
		Retunes:          c.retunes,
		Generation:       st.Generation,
		Cols:             st.Cols,
		Rows:             st.Rows,
		TrailMean:        mean,
		TrailStd:         std,
		TrailP10:         p10,
		TrailP50:         p50,
		TrailP90:         p90,
		SegmentsPerFrame: segmentsPerFrame,
	}

	c.windowStartFrame = currentFrame
	c.respawnsAtStart = st.Respawns
	c.resizes = 0
	c.retunes = 0
	c.frames = 0
	c.segments = 0

	return ws
}

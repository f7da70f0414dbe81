package systems

import (
	"image/color"
	"math/rand"

	"github.com/pthm-cable/flowfield/config"
)

// SystemParams holds the tunables of a particle system.
type SystemParams struct {
	Count int

	// Flow field shaping
	CellSize float64
	Zoom     float64
	Curve    float64

	// Per-particle ranges (inclusive)
	MinTrailLength int
	MaxTrailLength int
	MinSpeed       int
	MaxSpeed       int

	Palette   []color.RGBA
	LineWidth float64

	// Debug grid
	GridColor color.RGBA
	GridWidth float64
}

// ParamsFromConfig builds system parameters from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) SystemParams {
	return SystemParams{
		Count:          cfg.Particles.Count,
		CellSize:       cfg.Field.CellSize,
		Zoom:           cfg.Field.Zoom,
		Curve:          cfg.Field.Curve,
		MinTrailLength: cfg.Particles.MinTrailLength,
		MaxTrailLength: cfg.Particles.MaxTrailLength,
		MinSpeed:       cfg.Particles.MinSpeed,
		MaxSpeed:       cfg.Particles.MaxSpeed,
		Palette:        cfg.Derived.Palette,
		LineWidth:      cfg.Particles.LineWidth,
		GridColor:      cfg.Derived.GridColor,
		GridWidth:      cfg.Debug.GridWidth,
	}
}

// ParticleSystem owns the flow field and the particle population and drives
// them once per frame.
type ParticleSystem struct {
	params SystemParams
	rng    *rand.Rand

	width, height float64
	field         *FlowField
	particles     []Particle

	generation uint64 // last field generation handed out
	respawns   uint64
}

// NewParticleSystem creates an empty system. Call Init before rendering.
func NewParticleSystem(params SystemParams, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		params: params,
		rng:    rng,
	}
}

// Init builds a new flow field for the given surface and a fresh population.
// The respawn counter starts again from zero.
func (s *ParticleSystem) Init(width, height float64) {
	s.width = width
	s.height = height
	s.field = s.generateField()
	s.respawns = 0

	particles := make([]Particle, s.params.Count)
	for i := range particles {
		particles[i] = NewParticle(s.field, s.params, s.rng)
	}
	s.particles = particles
}

// Resize rebuilds the field and the population for new surface dimensions.
// Existing particles are discarded.
func (s *ParticleSystem) Resize(width, height float64) {
	s.Init(width, height)
}

// Retune regenerates the flow field with new shaping parameters.
// Particles keep their state and follow the new field from the next frame.
func (s *ParticleSystem) Retune(zoom, curve float64) {
	s.params.Zoom = zoom
	s.params.Curve = curve
	s.field = s.generateField()
}

func (s *ParticleSystem) generateField() *FlowField {
	f := GenerateFlowField(s.width, s.height, s.params.CellSize, s.params.Zoom, s.params.Curve)
	s.generation++
	f.generation = s.generation
	return f
}

// Render draws the optional grid, then draws and updates each particle in order.
// Each particle is drawn before it moves, so a frame shows the trail as it was
// at the end of the previous frame. An empty field renders nothing.
func (s *ParticleSystem) Render(c Canvas, debug bool) {
	if s.field.Empty() {
		return
	}

	if debug {
		s.drawGrid(c)
	}

	for i := range s.particles {
		p := &s.particles[i]
		p.Draw(c, s.params.LineWidth)
		if p.Update(s.field, s.rng) == StateCollapsed {
			s.respawns++
		}
	}
}

// Draw renders the current state without advancing it.
func (s *ParticleSystem) Draw(c Canvas, debug bool) {
	if s.field.Empty() {
		return
	}

	if debug {
		s.drawGrid(c)
	}

	for i := range s.particles {
		s.particles[i].Draw(c, s.params.LineWidth)
	}
}

// Update advances every particle by one frame without drawing.
func (s *ParticleSystem) Update() {
	if s.field.Empty() {
		return
	}

	for i := range s.particles {
		if s.particles[i].Update(s.field, s.rng) == StateCollapsed {
			s.respawns++
		}
	}
}

// drawGrid strokes one line per column and row boundary.
func (s *ParticleSystem) drawGrid(c Canvas) {
	f := s.field
	cs := f.cellSize

	for col := 0; col < f.cols; col++ {
		x := float64(col) * cs
		c.BeginPath()
		c.MoveTo(x, 0)
		c.LineTo(x, s.height)
		c.Stroke(s.params.GridColor, s.params.GridWidth)
	}

	for row := 0; row < f.rows; row++ {
		y := float64(row) * cs
		c.BeginPath()
		c.MoveTo(0, y)
		c.LineTo(s.width, y)
		c.Stroke(s.params.GridColor, s.params.GridWidth)
	}
}

// Field returns the current flow field snapshot.
func (s *ParticleSystem) Field() *FlowField { return s.field }

// Particles returns the population. Callers must not modify it.
func (s *ParticleSystem) Particles() []Particle { return s.particles }

// Len returns the number of particles.
func (s *ParticleSystem) Len() int { return len(s.particles) }

// Size returns the current surface dimensions.
func (s *ParticleSystem) Size() (width, height float64) { return s.width, s.height }

// Params returns the current tunables.
func (s *ParticleSystem) Params() SystemParams { return s.params }

// SystemStats summarises the population for telemetry.
type SystemStats struct {
	Particles    int
	Active       int
	Expired      int
	Collapsed    int
	Respawns     uint64
	TrailLengths []float64
	Generation   uint64
	Cols, Rows   int
}

// Stats counts particles per state and collects trail lengths.
func (s *ParticleSystem) Stats() SystemStats {
	st := SystemStats{
		Particles:    len(s.particles),
		Respawns:     s.respawns,
		TrailLengths: make([]float64, 0, len(s.particles)),
	}
	if s.field != nil {
		st.Generation = s.field.generation
		st.Cols = s.field.cols
		st.Rows = s.field.rows
	}

	for i := range s.particles {
		p := &s.particles[i]
		switch p.State() {
		case StateActive:
			st.Active++
		case StateExpired:
			st.Expired++
		case StateCollapsed:
			st.Collapsed++
		}
		st.TrailLengths = append(st.TrailLengths, float64(len(p.trail)))
	}
	return st
}

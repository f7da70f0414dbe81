package systems

import (
	"image/color"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// ParticleState is the lifecycle phase of a particle.
type ParticleState uint8

const (
	// StateActive particles move along the field and extend their trail.
	StateActive ParticleState = iota
	// StateExpired particles stand still while their trail shrinks.
	StateExpired
	// StateCollapsed particles have a single trail point left and respawn on the next update.
	StateCollapsed
)

// String returns the state name.
func (s ParticleState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	case StateCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Particle is a single trail-drawing particle steered by the flow field.
type Particle struct {
	pos       r2.Vec
	speed     int // step length multiplier, fixed at creation
	maxTrail  int // trail capacity, fixed at creation
	lifeTimer int
	color     color.RGBA

	// Trail history (oldest first), never empty
	trail []r2.Vec
}

// NewParticle creates a particle at a random position on the field's surface
// with randomised speed, trail capacity and palette colour.
func NewParticle(f *FlowField, params SystemParams, rng *rand.Rand) Particle {
	p := Particle{
		pos:      randomPosition(f, rng),
		speed:    randomInRange(rng, params.MinSpeed, params.MaxSpeed),
		maxTrail: randomInRange(rng, params.MinTrailLength, params.MaxTrailLength),
	}
	if len(params.Palette) > 0 {
		p.color = params.Palette[rng.Intn(len(params.Palette))]
	} else {
		p.color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	p.trail = make([]r2.Vec, 1, p.maxTrail+1)
	p.trail[0] = p.pos
	p.lifeTimer = p.maxTrail * 2
	return p
}

// randomInRange returns an integer uniformly drawn from [lo, hi].
func randomInRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// randomPosition returns an integer-floored point in [0,width)x[0,height).
func randomPosition(f *FlowField, rng *rand.Rand) r2.Vec {
	var w, h float64
	if f != nil {
		w, h = math.Max(f.width, 0), math.Max(f.height, 0)
	}
	return r2.Vec{
		X: math.Floor(rng.Float64() * w),
		Y: math.Floor(rng.Float64() * h),
	}
}

// State returns the particle's current lifecycle phase.
func (p *Particle) State() ParticleState {
	switch {
	case p.lifeTimer >= 1:
		return StateActive
	case len(p.trail) > 1:
		return StateExpired
	default:
		return StateCollapsed
	}
}

// Update advances the particle by one frame and returns the state it was in
// before the update.
func (p *Particle) Update(f *FlowField, rng *rand.Rand) ParticleState {
	state := p.State()

	switch state {
	case StateActive:
		p.lifeTimer--

		angle := f.Sample(p.pos.X, p.pos.Y)
		step := r2.Scale(float64(p.speed), r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)})
		p.pos = r2.Add(p.pos, step)

		p.trail = append(p.trail, p.pos)
		if len(p.trail) > p.maxTrail {
			p.dropOldest()
		}

	case StateExpired:
		p.dropOldest()

	case StateCollapsed:
		p.reset(f, rng)
	}

	return state
}

// dropOldest removes the first trail point, keeping order.
func (p *Particle) dropOldest() {
	n := copy(p.trail, p.trail[1:])
	p.trail = p.trail[:n]
}

// reset respawns the particle at a new random position with a full timer.
func (p *Particle) reset(f *FlowField, rng *rand.Rand) {
	p.pos = randomPosition(f, rng)
	p.lifeTimer = p.maxTrail * 2
	p.trail = append(p.trail[:0], p.pos)
}

// Draw strokes the trail as one polyline in the particle's colour.
func (p *Particle) Draw(c Canvas, lineWidth float64) {
	if len(p.trail) == 0 {
		return
	}

	c.BeginPath()
	c.MoveTo(p.trail[0].X, p.trail[0].Y)
	for _, pt := range p.trail[1:] {
		c.LineTo(pt.X, pt.Y)
	}
	c.Stroke(p.color, lineWidth)
}

// Position returns the current position.
func (p *Particle) Position() r2.Vec { return p.pos }

// Trail returns a copy of the trail, oldest point first.
func (p *Particle) Trail() []r2.Vec {
	out := make([]r2.Vec, len(p.trail))
	copy(out, p.trail)
	return out
}

// TrailLen returns the number of trail points.
func (p *Particle) TrailLen() int { return len(p.trail) }

// MaxTrailLength returns the trail capacity.
func (p *Particle) MaxTrailLength() int { return p.maxTrail }

// SpeedModifier returns the step length multiplier.
func (p *Particle) SpeedModifier() int { return p.speed }

// LifeTimer returns the remaining active frames.
func (p *Particle) LifeTimer() int { return p.lifeTimer }

// Color returns the palette colour picked at creation.
func (p *Particle) Color() color.RGBA { return p.color }

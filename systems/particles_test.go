package systems

import (
	"math/rand"
	"testing"
)

func newTestSystem(count int, seed int64) *ParticleSystem {
	params := testParams()
	params.Count = count
	return NewParticleSystem(params, rand.New(rand.NewSource(seed)))
}

func TestParticleSystemInit(t *testing.T) {
	s := newTestSystem(1000, 1)
	s.Init(800, 600)

	if s.Len() != 1000 {
		t.Errorf("expected 1000 particles, got %d", s.Len())
	}
	f := s.Field()
	if f.Cols() != 40 || f.Rows() != 30 || f.Len() != 1200 {
		t.Errorf("unexpected field %dx%d (%d values)", f.Cols(), f.Rows(), f.Len())
	}
	if f.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", f.Generation())
	}
}

func TestParticleSystemResize(t *testing.T) {
	s := newTestSystem(50, 1)
	s.Init(800, 600)
	old := s.Field()

	s.Resize(400, 300)

	f := s.Field()
	if f.Cols() != 20 || f.Rows() != 15 {
		t.Errorf("expected 20x15 after resize, got %dx%d", f.Cols(), f.Rows())
	}
	if f.Len() != 300 {
		t.Errorf("expected 300 values after resize, got %d", f.Len())
	}
	if f.Generation() <= old.Generation() {
		t.Errorf("expected newer generation, got %d after %d", f.Generation(), old.Generation())
	}
	// The previous snapshot is untouched
	if old.Len() != 1200 {
		t.Errorf("old snapshot changed to %d values", old.Len())
	}

	// Count is unaffected and every particle starts fresh inside the new bounds
	if s.Len() != 50 {
		t.Errorf("expected 50 particles after resize, got %d", s.Len())
	}
	for _, p := range s.Particles() {
		pos := p.Position()
		if pos.X < 0 || pos.X >= 400 || pos.Y < 0 || pos.Y >= 300 {
			t.Errorf("particle at %v outside resized surface", pos)
		}
		if p.TrailLen() != 1 {
			t.Errorf("expected fresh particle, trail length %d", p.TrailLen())
		}
	}
}

func TestParticleSystemRenderOrder(t *testing.T) {
	s := newTestSystem(10, 2)
	s.Init(800, 600)

	// Advance a few frames so trails have several points
	for i := 0; i < 3; i++ {
		s.Render(&recordingCanvas{}, false)
	}

	trails := make([][]float64, 0, s.Len())
	for _, p := range s.Particles() {
		xs := make([]float64, 0, p.TrailLen())
		for _, pt := range p.Trail() {
			xs = append(xs, pt.X)
		}
		trails = append(trails, xs)
	}

	c := &recordingCanvas{}
	s.Render(c, false)

	if len(c.paths) != s.Len() {
		t.Fatalf("expected %d paths, got %d", s.Len(), len(c.paths))
	}

	// Each path shows the trail as it was before this frame's update
	for i, path := range c.paths {
		if len(path.points) != len(trails[i]) {
			t.Fatalf("particle %d: drew %d points, trail had %d", i, len(path.points), len(trails[i]))
		}
		for j := range path.points {
			if path.points[j].X != trails[i][j] {
				t.Fatalf("particle %d point %d: drew %v, expected %v", i, j, path.points[j].X, trails[i][j])
			}
		}
	}

	// And every particle advanced afterwards
	for i, p := range s.Particles() {
		if p.TrailLen() != len(trails[i])+1 {
			t.Errorf("particle %d: expected trail %d after update, got %d", i, len(trails[i])+1, p.TrailLen())
		}
	}
}

func TestParticleSystemDebugGrid(t *testing.T) {
	s := newTestSystem(5, 3)
	s.Init(400, 300)

	plain := &recordingCanvas{}
	s.Draw(plain, false)
	if len(plain.paths) != 5 {
		t.Fatalf("expected 5 paths without debug, got %d", len(plain.paths))
	}

	debug := &recordingCanvas{}
	s.Draw(debug, true)
	gridLines := 20 + 15
	if len(debug.paths) != gridLines+5 {
		t.Fatalf("expected %d paths with debug, got %d", gridLines+5, len(debug.paths))
	}

	params := s.Params()
	for i := 0; i < gridLines; i++ {
		p := debug.paths[i]
		if p.color != params.GridColor || p.width != params.GridWidth {
			t.Errorf("grid line %d: unexpected style %v / %v", i, p.color, p.width)
		}
	}

	// First column line runs the full height, first row line the full width
	col := debug.paths[0].points
	if col[0].X != 0 || col[0].Y != 0 || col[1].X != 0 || col[1].Y != 300 {
		t.Errorf("unexpected first column line %v", col)
	}
	row := debug.paths[20].points
	if row[0].X != 0 || row[0].Y != 0 || row[1].X != 400 || row[1].Y != 0 {
		t.Errorf("unexpected first row line %v", row)
	}
}

func TestDebugDoesNotAffectSimulation(t *testing.T) {
	a := newTestSystem(100, 7)
	b := newTestSystem(100, 7)
	a.Init(800, 600)
	b.Init(800, 600)

	for i := 0; i < 500; i++ {
		a.Render(&recordingCanvas{}, false)
		b.Render(&recordingCanvas{}, i%2 == 0)
	}

	pa, pb := a.Particles(), b.Particles()
	for i := range pa {
		if pa[i].Position() != pb[i].Position() {
			t.Fatalf("particle %d position differs: %v vs %v", i, pa[i].Position(), pb[i].Position())
		}
		if pa[i].LifeTimer() != pb[i].LifeTimer() {
			t.Fatalf("particle %d timer differs: %d vs %d", i, pa[i].LifeTimer(), pb[i].LifeTimer())
		}
		ta, tb := pa[i].Trail(), pb[i].Trail()
		if len(ta) != len(tb) {
			t.Fatalf("particle %d trail length differs: %d vs %d", i, len(ta), len(tb))
		}
		for j := range ta {
			if ta[j] != tb[j] {
				t.Fatalf("particle %d trail point %d differs", i, j)
			}
		}
	}
}

func TestTrailBoundsInvariant(t *testing.T) {
	s := newTestSystem(200, 8)
	s.Init(640, 480)

	for frame := 0; frame < 1000; frame++ {
		s.Update()
		for i, p := range s.Particles() {
			if p.TrailLen() < 1 || p.TrailLen() > p.MaxTrailLength() {
				t.Fatalf("frame %d particle %d: trail length %d outside [1,%d]",
					frame, i, p.TrailLen(), p.MaxTrailLength())
			}
		}
	}
}

func TestSingleParticleCycle(t *testing.T) {
	s := newTestSystem(1, 9)
	s.Init(800, 600)
	p := &s.Particles()[0]
	maxLen := p.MaxTrailLength()

	for i := 0; i < 2*maxLen; i++ {
		s.Update()
	}
	if p.LifeTimer() != 0 || p.TrailLen() != maxLen {
		t.Fatalf("after active phase: timer %d trail %d", p.LifeTimer(), p.TrailLen())
	}

	for i := 0; i < maxLen-1; i++ {
		s.Update()
	}
	if p.State() != StateCollapsed {
		t.Fatalf("expected collapsed, got %v", p.State())
	}
	if s.Stats().Respawns != 0 {
		t.Fatalf("unexpected respawn before collapse")
	}

	s.Update()
	if p.TrailLen() != 1 || p.LifeTimer() != 2*maxLen {
		t.Errorf("expected reset particle, got trail %d timer %d", p.TrailLen(), p.LifeTimer())
	}
	if s.Stats().Respawns != 1 {
		t.Errorf("expected 1 respawn, got %d", s.Stats().Respawns)
	}
}

func TestEmptyFieldRenderIsNoop(t *testing.T) {
	s := newTestSystem(10, 10)
	s.params.CellSize = 0
	s.Init(800, 600)

	if !s.Field().Empty() {
		t.Fatal("expected empty field")
	}

	before := append([]Particle(nil), s.Particles()...)
	c := &recordingCanvas{}
	s.Render(c, true)

	if len(c.paths) != 0 {
		t.Errorf("expected no drawing, got %d paths", len(c.paths))
	}
	for i, p := range s.Particles() {
		if p.Position() != before[i].Position() || p.LifeTimer() != before[i].LifeTimer() {
			t.Errorf("particle %d changed on empty field", i)
		}
	}
}

func TestRetuneKeepsParticles(t *testing.T) {
	s := newTestSystem(20, 11)
	s.Init(800, 600)
	for i := 0; i < 10; i++ {
		s.Update()
	}

	positions := make([]float64, 0, s.Len())
	for _, p := range s.Particles() {
		positions = append(positions, p.Position().X)
	}
	old := s.Field()

	s.Retune(0.2, 2)

	f := s.Field()
	if f.Generation() != old.Generation()+1 {
		t.Errorf("expected generation %d, got %d", old.Generation()+1, f.Generation())
	}
	if f.Zoom() != 0.2 || f.Curve() != 2 {
		t.Errorf("expected retuned field, got zoom %v curve %v", f.Zoom(), f.Curve())
	}
	if f.Cols() != old.Cols() || f.Rows() != old.Rows() {
		t.Errorf("retune changed grid size")
	}
	for i, p := range s.Particles() {
		if p.Position().X != positions[i] {
			t.Errorf("particle %d moved on retune", i)
		}
	}
}

func TestStatsCountsStates(t *testing.T) {
	s := newTestSystem(300, 12)
	s.Init(800, 600)
	for i := 0; i < 400; i++ {
		s.Update()
	}

	st := s.Stats()
	if st.Active+st.Expired+st.Collapsed != st.Particles {
		t.Errorf("state counts %d+%d+%d do not add up to %d", st.Active, st.Expired, st.Collapsed, st.Particles)
	}
	if len(st.TrailLengths) != 300 {
		t.Errorf("expected 300 trail lengths, got %d", len(st.TrailLengths))
	}
	if st.Cols != 40 || st.Rows != 30 {
		t.Errorf("unexpected grid in stats: %dx%d", st.Cols, st.Rows)
	}
	// Longest possible cycle is 3*209 frames, so 400 frames is not enough for every
	// particle to respawn, but some short-trail particles must have.
	if st.Respawns == 0 {
		t.Error("expected some respawns after 400 frames")
	}
}

func TestRespawnsResetOnResize(t *testing.T) {
	s := newTestSystem(300, 12)
	s.Init(800, 600)
	for i := 0; i < 400; i++ {
		s.Update()
	}
	if s.Stats().Respawns == 0 {
		t.Fatal("expected some respawns after 400 frames")
	}

	s.Retune(0.2, 2)
	if s.Stats().Respawns == 0 {
		t.Error("retune should keep the respawn counter")
	}

	s.Resize(400, 300)
	if n := s.Stats().Respawns; n != 0 {
		t.Errorf("expected respawns to restart after resize, got %d", n)
	}
}

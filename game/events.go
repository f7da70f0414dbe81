package game

import "sync"

// Event is a request to change the effect, applied at the start of the next frame.
type Event interface {
	apply(g *Game)
}

// ResizeEvent rebuilds the field and population for new surface dimensions.
// A resize to the current size is ignored.
type ResizeEvent struct {
	Width, Height float64
}

func (e ResizeEvent) apply(g *Game) {
	w, h := g.system.Size()
	if e.Width == w && e.Height == h {
		return
	}
	g.system.Resize(e.Width, e.Height)
	g.collector.RecordResize()
}

// ToggleDebugEvent flips the grid overlay.
type ToggleDebugEvent struct{}

func (ToggleDebugEvent) apply(g *Game) {
	g.debug = !g.debug
}

// RetuneEvent regenerates the field with new shaping parameters.
type RetuneEvent struct {
	Zoom, Curve float64
}

func (e RetuneEvent) apply(g *Game) {
	p := g.system.Params()
	if e.Zoom == p.Zoom && e.Curve == p.Curve {
		return
	}
	g.system.Retune(e.Zoom, e.Curve)
	g.collector.RecordRetune()
}

// inbox queues events posted from other goroutines.
type inbox struct {
	mu     sync.Mutex
	events []Event
}

func (b *inbox) push(e Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

// drain returns queued events in posting order and empties the queue.
func (b *inbox) drain() []Event {
	b.mu.Lock()
	events := b.events
	b.events = nil
	b.mu.Unlock()
	return events
}

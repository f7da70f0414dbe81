package game

import "context"

// RunHeadless ticks t until ctx is done or maxTicks frames have run
// (0 = unlimited). Returns the number of frames run.
func RunHeadless(ctx context.Context, t Ticker, maxTicks int) int {
	n := 0
	for maxTicks <= 0 || n < maxTicks {
		select {
		case <-ctx.Done():
			return n
		default:
		}
		t.Tick()
		n++
	}
	return n
}

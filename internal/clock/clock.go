package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock is a free-running millisecond counter. Tick is called by exactly one
// tick source, Now may be called from anywhere. The counter wraps after about
// 49 days, which is accepted.
type Clock struct {
	millis atomic.Uint32
	step   uint32
}

// Increment - milliseconds that elapse between two timer interrupts for a
// timer running at cpuHz/prescaler and firing every counts ticks.
func Increment(prescaler, counts, cpuHz uint32) uint32 {
	if cpuHz == 0 {
		return 0
	}
	return uint32(uint64(prescaler) * uint64(counts) * 1000 / uint64(cpuHz))
}

// New - a clock that advances by step milliseconds on every tick.
func New(step uint32) *Clock {
	return &Clock{step: step}
}

// Step - the increment applied by Tick.
func (that *Clock) Step() uint32 {
	return that.step
}

// Tick - advances the counter by one step.
func (that *Clock) Tick() {
	that.millis.Add(that.step)
}

// Now - milliseconds since start.
func (that *Clock) Now() uint32 {
	return that.millis.Load()
}

// Run - drives the clock from a host ticker until the context is done. It
// stands in for the timer interrupt.
func (that *Clock) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.Tick()
		}
	}
}

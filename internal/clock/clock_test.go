package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIncrement(t *testing.T) {
	t.Run("Atmega timer0 setup gives 4ms", func(t *testing.T) {
		// Given: prescaler 256, compare at 250, 16 MHz
		// When: computing the step
		step := Increment(256, 250, 16_000_000)

		// Then: every interrupt is worth 4 ms
		assert.Equal(t, uint32(4), step)
	})

	t.Run("Zero frequency gives no step", func(t *testing.T) {
		assert.Equal(t, uint32(0), Increment(256, 250, 0))
	})
}

func TestClock_Tick(t *testing.T) {
	// Given: a clock with a 4ms step
	clk := New(4)

	// When: ticking three times
	clk.Tick()
	clk.Tick()
	clk.Tick()

	// Then: the counter advanced by three steps
	assert.Equal(t, uint32(12), clk.Now())
	assert.Equal(t, uint32(4), clk.Step())
}

func TestClock_ConcurrentReaders(t *testing.T) {
	// Given: one ticking writer and several readers
	clk := New(1)
	const ticks = 10_000

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint32
			for range ticks {
				now := clk.Now()
				// Then: no reader sees the counter go backwards
				assert.GreaterOrEqual(t, now, last)
				last = now
			}
		}()
	}

	for range ticks {
		clk.Tick()
	}
	wg.Wait()

	// Then: no increment was lost
	assert.Equal(t, uint32(ticks), clk.Now())
}

func TestClock_Run(t *testing.T) {
	// Given: a clock driven by a fast host ticker
	clk := New(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		clk.Run(ctx, time.Millisecond)
		close(done)
	}()

	// When: the ticker has had time to fire
	assert.Eventually(t, func() bool { return clk.Now() > 0 }, time.Second, time.Millisecond)

	// Then: cancelling stops the tick source
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock did not stop")
	}
}

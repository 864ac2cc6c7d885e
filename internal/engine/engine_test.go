package engine

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ledmatrix-console/internal/buttons"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

type countingGame struct {
	steps    atomic.Int64
	finishAt int64
}

func (that *countingGame) Name() string   { return "counting" }
func (that *countingGame) Step()          { that.steps.Add(1) }
func (that *countingGame) Finished() bool { return that.steps.Load() >= that.finishAt }

type countingDisplay struct {
	shows atomic.Int64
}

func (that *countingDisplay) Show() { that.shows.Add(1) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTiming(t *testing.T) {
	t.Run("FirstHalf toggles every half period", func(t *testing.T) {
		timing := DefaultTiming()

		assert.True(t, timing.FirstHalf(0))
		assert.True(t, timing.FirstHalf(499))
		assert.False(t, timing.FirstHalf(500))
		assert.False(t, timing.FirstHalf(999))
		assert.True(t, timing.FirstHalf(1000))
	})

	t.Run("Presented waits for the present window", func(t *testing.T) {
		timing := DefaultTiming()

		assert.False(t, timing.Presented(0, 1000))
		assert.True(t, timing.Presented(0, 1004))
		assert.True(t, timing.Presented(200, 1204))
	})

	t.Run("Presented survives counter wraparound", func(t *testing.T) {
		timing := DefaultTiming()
		start := uint32(0xFFFF_FF00)

		assert.False(t, timing.Presented(start, start+500))
		assert.True(t, timing.Presented(start, start+1100))
	})

	t.Run("Zero half period never flashes", func(t *testing.T) {
		assert.True(t, Timing{}.FirstHalf(12345))
	})
}

func TestLoop_Run(t *testing.T) {
	for _, period := range []time.Duration{0, time.Millisecond} {
		t.Run(period.String(), func(t *testing.T) {
			// Given: a game that finishes after a few steps
			game := &countingGame{finishAt: 3}
			screen := &countingDisplay{}
			loop := NewLoop(discardLogger(), screen, period)
			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan error, 1)
			go func() { done <- loop.Run(ctx, game) }()

			// When: the loop keeps running past the end of the game
			require.Eventually(t, func() bool { return game.steps.Load() > 10 }, time.Second, time.Millisecond)
			cancel()

			// Then: it stops cleanly and showed one row per step
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatal("loop did not stop")
			}
			assert.Equal(t, game.steps.Load(), screen.shows.Load())
		})
	}
}

type scriptedScanner struct {
	scans []buttons.Scan
}

func (that *scriptedScanner) Scan() buttons.Scan {
	scan := that.scans[0]
	that.scans = that.scans[1:]
	return scan
}

func scanOf(pressed ...entity.Position) buttons.Scan {
	var scan buttons.Scan
	for _, p := range pressed {
		scan[p.Y][p.X] = true
	}
	return scan
}

func TestPresses_Next(t *testing.T) {
	// Given: a held pair that grows to three buttons, then a single press
	pair := scanOf(entity.Pos(0, 0), entity.Pos(1, 0))
	scanner := &scriptedScanner{scans: []buttons.Scan{
		pair,
		pair,
		scanOf(entity.Pos(0, 0), entity.Pos(1, 0), entity.Pos(2, 2)),
		{},
		scanOf(entity.Pos(2, 1)),
	}}

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	presses := NewPresses(logger, scanner)

	// When: reading every scan
	results := make([]bool, 0, 5)
	var last entity.Position
	for range 5 {
		p, ok := presses.Next()
		results = append(results, ok)
		last = p
	}

	// Then: only the single press counts
	assert.Equal(t, []bool{false, false, false, false, true}, results)
	assert.Equal(t, entity.Pos(2, 1), last)

	// Then: ambiguity is logged once per change in the number of held buttons
	assert.Equal(t, 2, strings.Count(out.String(), "ambiguous press ignored"))
	assert.Contains(t, out.String(), "pressed=2")
	assert.Contains(t, out.String(), "pressed=3")
}

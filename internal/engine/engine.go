package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/ledmatrix-console/internal/buttons"
	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

// Game is one turn-based state machine. Step runs a single loop iteration:
// read input, advance the state and write the next frame.
type Game interface {
	Name() string
	Step()
	Finished() bool
}

type Clock interface {
	Now() uint32
}

type Scanner interface {
	Scan() buttons.Scan
}

type Screen interface {
	Write(buffer display.Buffer)
}

// IO is the shared hardware every game is built on.
type IO struct {
	Clock   Clock
	Buttons Scanner
	Display Screen
}

// Timing holds the presentation windows, in milliseconds.
type Timing struct {
	Present         uint32
	FlashHalfPeriod uint32
}

func DefaultTiming() Timing {
	return Timing{Present: 1000, FlashHalfPeriod: 500}
}

// FirstHalf - true during the first half of every flash cycle.
func (that Timing) FirstHalf(now uint32) bool {
	if that.FlashHalfPeriod == 0 {
		return true
	}
	return now%(2*that.FlashHalfPeriod) < that.FlashHalfPeriod
}

// Presented - true once the start-up color has been shown long enough.
func (that Timing) Presented(start, now uint32) bool {
	return now-start > that.Present
}

// Presses turns scans into single presses. Ambiguous scans are dropped and
// logged at debug level whenever the number of held buttons changes.
type Presses struct {
	logger  *slog.Logger
	scanner Scanner
	held    int
}

func NewPresses(logger *slog.Logger, scanner Scanner) *Presses {
	return &Presses{
		logger:  logger,
		scanner: scanner,
	}
}

// Next - scans once; the position is valid only for exactly one press.
func (that *Presses) Next() (entity.Position, bool) {
	scan := that.scanner.Scan()
	p, ok := scan.ExactlyOne()

	held := scan.Count()
	if !ok && held > 1 && held != that.held {
		that.logger.Debug("ambiguous press ignored", "pressed", held)
	}
	that.held = held

	return p, ok
}

type renderer interface {
	Show()
}

// Loop drives one game and the display multiplexing.
type Loop struct {
	logger  *slog.Logger
	display renderer
	period  time.Duration
}

// NewLoop - a zero period runs iterations back to back.
func NewLoop(logger *slog.Logger, display renderer, period time.Duration) *Loop {
	return &Loop{
		logger:  logger.With("component", "loop"),
		display: display,
		period:  period,
	}
}

// Run - steps the game and shows one display row per iteration until the
// context is done. A finished game keeps running so its end screen flashes.
func (that *Loop) Run(ctx context.Context, game Game) error {
	log := that.logger.With("game", game.Name())
	log.Info("game started")

	var tick <-chan time.Time
	if that.period > 0 {
		ticker := time.NewTicker(that.period)
		defer ticker.Stop()
		tick = ticker.C
	}

	finished := false
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				log.Info("loop stopped")
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			log.Info("loop stopped")
			return nil
		}

		game.Step()
		that.display.Show()

		if !finished && game.Finished() {
			finished = true
			log.Info("game over, restart to play again")
		}
	}
}

package suite

import (
	"log/slog"
	"os"
	"testing"

	"github.com/rocketscienceinc/ledmatrix-console/internal/clock"
	"github.com/rocketscienceinc/ledmatrix-console/internal/console"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
	"github.com/rocketscienceinc/ledmatrix-console/internal/simulator"
)

const (
	tickStep    = 4
	holdMS      = 40
	persistence = 20
)

// Suite is a console assembled on the simulated board. The clock only moves
// when the test advances it, one loop iteration per tick.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Clock   *clock.Clock
	Board   *simulator.Board
	Console *console.Console

	game engine.Game
}

func New(t *testing.T) *Suite {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// no seed pin, so red always starts
	wiring := hardware.DefaultWiring()
	wiring.SeedPin = -1

	ticks := clock.New(tickStep)

	board, err := simulator.New(ticks, wiring, simulator.Options{Hold: holdMS, Persistence: persistence})
	if err != nil {
		t.Fatalf("could not create board: %v", err)
	}

	device, err := console.New(logger, ticks, board, console.Settings{
		Wiring: wiring,
		Timing: engine.DefaultTiming(),
	})
	if err != nil {
		t.Fatalf("could not assemble console: %v", err)
	}

	return &Suite{
		T:       t,
		Logger:  logger,
		Clock:   ticks,
		Board:   board,
		Console: device,
	}
}

// Start - builds the named game. Red starts.
func (that *Suite) Start(name string) engine.Game {
	that.Helper()

	game, err := that.Console.Manager.NewGame(name)
	if err != nil {
		that.Fatalf("could not create %s: %v", name, err)
	}
	that.game = game

	return game
}

// Advance - runs loop iterations until ms milliseconds have passed.
func (that *Suite) Advance(ms uint32) {
	for range ms / tickStep {
		that.Clock.Tick()
		that.game.Step()
		that.Console.Display.Show()
	}
}

// AdvanceTo - runs loop iterations until the clock reads at least ms.
func (that *Suite) AdvanceTo(ms uint32) {
	if now := that.Clock.Now(); ms > now {
		that.Advance(ms - now + tickStep - 1)
	}
}

// Tap - presses a button, holds it for a while and lets go.
func (that *Suite) Tap(p entity.Position) {
	that.Board.Release()
	that.Board.Press(p)
	that.Advance(holdMS)
	that.Board.Release()
	that.Advance(2 * tickStep)
}

package console

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/ledmatrix-console/internal/buttons"
	"github.com/rocketscienceinc/ledmatrix-console/internal/clock"
	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
	"github.com/rocketscienceinc/ledmatrix-console/internal/usecase"
)

// Settings is what the console needs besides its pins.
type Settings struct {
	Wiring     hardware.Wiring
	Timing     engine.Timing
	LoopPeriod time.Duration
}

// Console is the assembled device: clock, drivers and the game manager.
type Console struct {
	Clock   *clock.Clock
	Display *display.Display
	Manager *usecase.GameManager
}

// New - configures the pins through the provider once and moves them into the drivers.
func New(logger *slog.Logger, ticks *clock.Clock, provider hardware.PinProvider, settings Settings) (*Console, error) {
	lines, err := hardware.Assemble(provider, settings.Wiring)
	if err != nil {
		return nil, fmt.Errorf("could not assemble hardware: %w", err)
	}

	scanner := buttons.New(lines.Buttons)
	screen := display.New(lines.Display, ticks, display.Buffer{})

	gameIO := engine.IO{Clock: ticks, Buttons: scanner, Display: screen}
	loop := engine.NewLoop(logger, screen, settings.LoopPeriod)

	return &Console{
		Clock:   ticks,
		Display: screen,
		Manager: usecase.NewGameManager(logger, gameIO, lines.Seed, settings.Timing, loop),
	}, nil
}

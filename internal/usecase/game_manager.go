package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hexapawn"
	"github.com/rocketscienceinc/ledmatrix-console/internal/tictactoe"
)

type gameLoop interface {
	Run(ctx context.Context, game engine.Game) error
}

type factory func(logger *slog.Logger, io engine.IO, timing engine.Timing, first entity.Player) engine.Game

var games = map[string]factory{
	tictactoe.Name: func(logger *slog.Logger, io engine.IO, timing engine.Timing, first entity.Player) engine.Game {
		return tictactoe.NewGame(logger, io, timing, first)
	},
	hexapawn.Name: func(logger *slog.Logger, io engine.IO, timing engine.Timing, first entity.Player) engine.Game {
		return hexapawn.NewGame(logger, io, timing, first)
	},
}

// Games - the names NewGame accepts.
func Games() []string {
	return []string{tictactoe.Name, hexapawn.Name}
}

// GameManager picks the game the console runs and drives it.
type GameManager struct {
	logger *slog.Logger
	io     engine.IO
	seed   hardware.RandomSource
	timing engine.Timing
	loop   gameLoop
}

func NewGameManager(logger *slog.Logger, io engine.IO, seed hardware.RandomSource, timing engine.Timing, loop gameLoop) *GameManager {
	return &GameManager{
		logger: logger,
		io:     io,
		seed:   seed,
		timing: timing,
		loop:   loop,
	}
}

// NewGame - builds the named game. The starting player is drawn from the seed.
func (that *GameManager) NewGame(name string) (engine.Game, error) {
	log := that.logger.With("method", "NewGame")

	create, ok := games[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q, want one of %v", apperror.ErrUnknownGame, name, Games())
	}

	first := entity.ChoosePlayer(that.seed.Bit())
	log.Info("game selected", "game", name, "first", first.String())

	return create(that.logger, that.io, that.timing, first), nil
}

// Play - runs the named game until the context is done.
func (that *GameManager) Play(ctx context.Context, name string) error {
	game, err := that.NewGame(name)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.loop.Run(ctx, game); err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}

	return nil
}

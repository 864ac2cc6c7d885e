package hexapawn

import (
	"log/slog"

	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

const Name = "hexapawn"

type Phase int

const (
	PresentCurrentPlayer Phase = iota
	WaitForPick
	WaitForPlace
	DisplayWinner
)

func (that Phase) String() string {
	switch that {
	case PresentCurrentPlayer:
		return "present-current-player"
	case WaitForPick:
		return "wait-for-pick"
	case WaitForPlace:
		return "wait-for-place"
	case DisplayWinner:
		return "display-winner"
	default:
		return "unknown"
	}
}

// State is the active phase. Selected is set in WaitForPlace, Winner in DisplayWinner.
type State struct {
	Phase    Phase
	Selected Pawn
	Winner   entity.Player
}

// Game is the Hexapawn state machine. It is owned by the main loop.
type Game struct {
	logger *slog.Logger
	io     engine.IO
	timing engine.Timing

	pawns   Pawns
	current entity.Player
	state   State
	started uint32
	presses *engine.Presses
}

// NewGame - pawns on their home rows, showing the starting player's color.
func NewGame(logger *slog.Logger, io engine.IO, timing engine.Timing, first entity.Player) *Game {
	game := &Game{
		logger:  logger.With("component", Name),
		io:      io,
		timing:  timing,
		pawns:   StartingPawns(),
		current: first,
		started: io.Clock.Now(),
	}
	game.presses = engine.NewPresses(game.logger, io.Buttons)

	io.Display.Write(entity.Fill(display.FromPlayer(first)))

	return game
}

func (that *Game) Name() string {
	return Name
}

func (that *Game) State() State {
	return that.state
}

func (that *Game) Pawns() Pawns {
	return that.pawns
}

func (that *Game) CurrentPlayer() entity.Player {
	return that.current
}

func (that *Game) Finished() bool {
	return that.state.Phase == DisplayWinner
}

// Step - one loop iteration.
func (that *Game) Step() {
	now := that.io.Clock.Now()

	switch that.state.Phase {
	case PresentCurrentPlayer:
		if that.timing.Presented(that.started, now) {
			that.transition(State{Phase: WaitForPick})
		}
	case WaitForPick:
		that.waitForPick()
	case WaitForPlace:
		that.waitForPlace(now)
	case DisplayWinner:
		that.io.Display.Write(display.Checkerboard(display.FromPlayer(that.state.Winner), that.timing.FirstHalf(now)))
	}
}

func (that *Game) waitForPick() {
	that.io.Display.Write(that.pawns.Buffer())

	if p, ok := that.presses.Next(); ok {
		if pawn, own := that.ownPawn(p); own {
			that.transition(State{Phase: WaitForPlace, Selected: pawn})
		}
	}

	that.checkWinner()
}

func (that *Game) waitForPlace(now uint32) {
	selected := that.state.Selected
	firstHalf := that.timing.FirstHalf(now)

	// the selected pawn blinks, its destinations light up in the other half
	buffer := that.pawns.Buffer()
	buffer[selected.Position.Y][selected.Position.X].Filter(firstHalf)
	if !firstHalf {
		for _, move := range that.pawns.LegalMoves(selected) {
			buffer.Set(move, buffer.At(move).WithPlayer(selected.Player))
		}
	}
	that.io.Display.Write(buffer)

	p, ok := that.presses.Next()
	if !ok {
		return
	}

	if pawn, own := that.ownPawn(p); own {
		that.state.Selected = pawn
		that.logger.Debug("pawn re-picked", "x", p.X, "y", p.Y)
		return
	}

	if !that.pawns.IsLegal(selected, p) {
		return
	}

	that.pawns.Move(selected, p)
	that.logger.Debug("pawn moved",
		"player", selected.Player.String(),
		"from_x", selected.Position.X, "from_y", selected.Position.Y,
		"to_x", p.X, "to_y", p.Y,
	)
	that.current.Flip()
	that.transition(State{Phase: WaitForPick})
	that.checkWinner()
}

// ownPawn - the current player's pawn on p.
func (that *Game) ownPawn(p entity.Position) (Pawn, bool) {
	pawn, ok := that.pawns.At(p)
	if !ok || pawn.Player != that.current {
		return Pawn{}, false
	}

	return pawn, true
}

func (that *Game) checkWinner() {
	if winner, ok := that.pawns.Winner(that.current); ok {
		that.transition(State{Phase: DisplayWinner, Winner: winner})
	}
}

func (that *Game) transition(next State) {
	log := that.logger.With("method", "transition")

	switch next.Phase {
	case DisplayWinner:
		log.Info("state changed", "from", that.state.Phase.String(), "to", next.Phase.String(), "winner", next.Winner.String())
	case WaitForPlace:
		log.Debug("state changed", "from", that.state.Phase.String(), "to", next.Phase.String(),
			"x", next.Selected.Position.X, "y", next.Selected.Position.Y)
	default:
		log.Debug("state changed", "from", that.state.Phase.String(), "to", next.Phase.String())
	}

	that.state = next
}

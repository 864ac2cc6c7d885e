package tictactoe

import (
	"log/slog"

	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

const Name = "tictactoe"

// WinCombos are the 3 rows, 3 columns and 2 diagonals.
var WinCombos = [8][entity.Size]entity.Position{
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
	{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}},
}

type Phase int

const (
	PresentCurrentPlayer Phase = iota
	WaitForMove
	DisplayWinner
	DisplayTie
)

func (that Phase) String() string {
	switch that {
	case PresentCurrentPlayer:
		return "present-current-player"
	case WaitForMove:
		return "wait-for-move"
	case DisplayWinner:
		return "display-winner"
	case DisplayTie:
		return "display-tie"
	default:
		return "unknown"
	}
}

// State is the active phase; Winner is only meaningful in DisplayWinner.
type State struct {
	Phase  Phase
	Winner entity.Player
}

// Game is the Tic-Tac-Toe state machine. It is owned by the main loop.
type Game struct {
	logger *slog.Logger
	io     engine.IO
	timing engine.Timing

	board   entity.Board[entity.Cell]
	current entity.Player
	state   State
	started uint32
	presses *engine.Presses
}

// NewGame - a fresh board, showing the starting player's color.
func NewGame(logger *slog.Logger, io engine.IO, timing engine.Timing, first entity.Player) *Game {
	game := &Game{
		logger:  logger.With("component", Name),
		io:      io,
		timing:  timing,
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

func (that *Game) Board() entity.Board[entity.Cell] {
	return that.board
}

func (that *Game) CurrentPlayer() entity.Player {
	return that.current
}

// Finished - true in the terminal phases.
func (that *Game) Finished() bool {
	return that.state.Phase == DisplayWinner || that.state.Phase == DisplayTie
}

// Step - one loop iteration.
func (that *Game) Step() {
	now := that.io.Clock.Now()

	switch that.state.Phase {
	case PresentCurrentPlayer:
		if that.timing.Presented(that.started, now) {
			that.transition(State{Phase: WaitForMove})
		}
	case WaitForMove:
		that.waitForMove()
	case DisplayWinner:
		that.io.Display.Write(display.Checkerboard(display.FromPlayer(that.state.Winner), that.timing.FirstHalf(now)))
	case DisplayTie:
		that.io.Display.Write(display.TieCheckerboard(that.timing.FirstHalf(now)))
	}
}

func (that *Game) waitForMove() {
	if p, ok := that.presses.Next(); ok {
		that.place(p)
	}

	that.io.Display.Write(entity.MapBoard(that.board, display.FromCell))

	if winner, ok := Winner(that.board); ok {
		that.transition(State{Phase: DisplayWinner, Winner: winner})
		return
	}

	if IsFull(that.board) {
		that.transition(State{Phase: DisplayTie})
	}
}

// place - marks an empty cell for the current player and passes the turn.
// Pressing an occupied cell does nothing.
func (that *Game) place(p entity.Position) {
	if !that.board.At(p).IsEmpty() {
		return
	}

	that.board.Set(p, entity.Mark(that.current))
	that.logger.Debug("mark placed", "player", that.current.String(), "x", p.X, "y", p.Y)
	that.current.Flip()
}

func (that *Game) transition(next State) {
	log := that.logger.With("method", "transition")

	if next.Phase == DisplayWinner {
		log.Info("state changed", "from", that.state.Phase.String(), "to", next.Phase.String(), "winner", next.Winner.String())
	} else {
		log.Info("state changed", "from", that.state.Phase.String(), "to", next.Phase.String())
	}

	that.state = next
}

// Winner - the player owning a complete line. A full board without a line has
// no winner; that is a tie and is detected by IsFull.
func Winner(board entity.Board[entity.Cell]) (entity.Player, bool) {
	for _, combo := range WinCombos {
		a, b, c := board.At(combo[0]), board.At(combo[1]), board.At(combo[2])
		if !a.IsEmpty() && a == b && b == c {
			return a.Player()
		}
	}

	return 0, false
}

// IsFull - every cell is marked.
func IsFull(board entity.Board[entity.Cell]) bool {
	return board.Every(func(cell entity.Cell) bool { return !cell.IsEmpty() })
}

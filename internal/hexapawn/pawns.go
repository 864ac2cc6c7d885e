package hexapawn

import (
	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

// Pawn is a value: its position plus the player owning it.
type Pawn struct {
	Position entity.Position
	Player   entity.Player
}

func NewPawn(x, y int, player entity.Player) Pawn {
	return Pawn{Position: entity.Pos(x, y), Player: player}
}

// HomeRow - the row a player's pawns start on.
func HomeRow(player entity.Player) int {
	if player == entity.Red {
		return 0
	}
	return entity.Size - 1
}

// Forward - the y direction a player's pawns advance in.
func Forward(player entity.Player) int {
	if player == entity.Red {
		return 1
	}
	return -1
}

const capacity = 2 * entity.Size

type slot struct {
	pawn  Pawn
	alive bool
}

// Pawns is the fixed set of six pawns. Captured pawns leave an empty slot.
type Pawns struct {
	slots [capacity]slot
}

// StartingPawns - three pawns per player on their home rows.
func StartingPawns() Pawns {
	var pawns Pawns
	for x := range entity.Size {
		pawns.slots[x] = slot{pawn: NewPawn(x, HomeRow(entity.Red), entity.Red), alive: true}
		pawns.slots[entity.Size+x] = slot{pawn: NewPawn(x, HomeRow(entity.Blue), entity.Blue), alive: true}
	}

	return pawns
}

// PawnsOf - a set holding exactly the given pawns, extra pawns are dropped.
func PawnsOf(pawns ...Pawn) Pawns {
	var set Pawns
	for i, pawn := range pawns {
		if i == capacity {
			break
		}
		set.slots[i] = slot{pawn: pawn, alive: true}
	}

	return set
}

// All - the pawns still on the board.
func (that *Pawns) All() []Pawn {
	all := make([]Pawn, 0, capacity)
	for _, s := range that.slots {
		if s.alive {
			all = append(all, s.pawn)
		}
	}

	return all
}

func (that *Pawns) Len() int {
	return len(that.All())
}

func (that *Pawns) Count(player entity.Player) int {
	count := 0
	for _, pawn := range that.All() {
		if pawn.Player == player {
			count++
		}
	}

	return count
}

// At - the pawn standing on p, if any.
func (that *Pawns) At(p entity.Position) (Pawn, bool) {
	for _, pawn := range that.All() {
		if pawn.Position == p {
			return pawn, true
		}
	}

	return Pawn{}, false
}

// Contains - the exact pawn (position and owner) is on the board.
func (that *Pawns) Contains(pawn Pawn) bool {
	found, ok := that.At(pawn.Position)
	return ok && found == pawn
}

// LegalMoves - one step forward onto an empty cell, or one step diagonally
// forward onto an opposing pawn.
func (that *Pawns) LegalMoves(pawn Pawn) []entity.Position {
	moves := make([]entity.Position, 0, 3)

	forward, ok := pawn.Position.Offset(0, Forward(pawn.Player))
	if !ok {
		return moves
	}

	if _, occupied := that.At(forward); !occupied {
		moves = append(moves, forward)
	}

	for _, dx := range []int{-1, 1} {
		side, ok := forward.Offset(dx, 0)
		if !ok {
			continue
		}

		if other, occupied := that.At(side); occupied && other.Player != pawn.Player {
			moves = append(moves, side)
		}
	}

	return moves
}

// IsLegal - to is one of the pawn's legal moves.
func (that *Pawns) IsLegal(pawn Pawn, to entity.Position) bool {
	for _, move := range that.LegalMoves(pawn) {
		if move == to {
			return true
		}
	}

	return false
}

// Move - captures whatever stands on to, then relocates the pawn. Legality is
// the caller's business. Returns false when the pawn is not on the board.
func (that *Pawns) Move(pawn Pawn, to entity.Position) bool {
	if !that.Contains(pawn) {
		return false
	}

	for i := range that.slots {
		if that.slots[i].alive && that.slots[i].pawn.Position == to {
			that.slots[i].alive = false
		}
	}

	for i := range that.slots {
		if that.slots[i].alive && that.slots[i].pawn == pawn {
			that.slots[i].pawn.Position = to
			break
		}
	}

	return true
}

// HasMoves - at least one of the player's pawns can move.
func (that *Pawns) HasMoves(player entity.Player) bool {
	for _, pawn := range that.All() {
		if pawn.Player == player && len(that.LegalMoves(pawn)) > 0 {
			return true
		}
	}

	return false
}

// Winner - checked in order: only one player has pawns left; the player to
// move is stuck, so the other player wins; a pawn stands on the opposing home row.
func (that *Pawns) Winner(toMove entity.Player) (entity.Player, bool) {
	all := that.All()
	if len(all) > 0 {
		owner := all[0].Player
		if that.Count(owner) == len(all) {
			return owner, true
		}
	}

	if !that.HasMoves(toMove) {
		return toMove.Other(), true
	}

	for _, pawn := range all {
		if pawn.Position.Y == HomeRow(pawn.Player.Other()) {
			return pawn.Player, true
		}
	}

	return 0, false
}

// Buffer - every pawn in its owner's color.
func (that *Pawns) Buffer() display.Buffer {
	var buffer display.Buffer
	for _, pawn := range that.All() {
		buffer.Set(pawn.Position, display.FromPlayer(pawn.Player))
	}

	return buffer
}

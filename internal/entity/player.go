package entity

// Player is one of the two sides. Red is always drawn with the red LEDs and
// Blue with the blue ones.
type Player uint8

const (
	Red Player = iota
	Blue
)

func (that Player) String() string {
	if that == Red {
		return "red"
	}
	return "blue"
}

// Other - returns the opposing player.
func (that Player) Other() Player {
	if that == Red {
		return Blue
	}
	return Red
}

// Flip - hands the turn to the other player.
func (that *Player) Flip() {
	*that = that.Other()
}

// ChoosePlayer - picks the starting player from a single random bit, a clear
// bit gives Red.
func ChoosePlayer(bit bool) Player {
	if bit {
		return Blue
	}
	return Red
}

// Cell is a Tic-Tac-Toe square: empty or marked by one player.
type Cell uint8

const EmptyCell Cell = 0

// Mark - the cell occupied by the player.
func Mark(player Player) Cell {
	return Cell(player) + 1
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// Player - the occupant of the cell, false when the cell is empty.
func (that Cell) Player() (Player, bool) {
	if that == EmptyCell {
		return 0, false
	}
	return Player(that - 1), true
}

package entity

// Size is the edge length of every board on the console.
const Size = 3

// Position is a cell coordinate. Both X and Y are always within [0, Size).
type Position struct {
	X int
	Y int
}

// Pos - builds a position, it does not validate the bounds.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Valid - reports whether the position lies on the board.
func (that Position) Valid() bool {
	return that.X >= 0 && that.X < Size && that.Y >= 0 && that.Y < Size
}

// Offset - returns the position moved by (dx, dy). The second value is false
// when the result would leave the board.
func (that Position) Offset(dx, dy int) (Position, bool) {
	moved := Position{X: that.X + dx, Y: that.Y + dy}
	if !moved.Valid() {
		return Position{}, false
	}

	return moved, true
}

// Index - row-major index of the position, 0 for (0,0) and Size*Size-1 for the last cell.
func (that Position) Index() int {
	return that.Y*Size + that.X
}

// Positions - every cell of the board in row-major order.
func Positions() [Size * Size]Position {
	var all [Size * Size]Position
	for i := range all {
		all[i] = Position{X: i % Size, Y: i / Size}
	}

	return all
}

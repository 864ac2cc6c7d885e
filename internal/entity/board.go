package entity

// Board is a fixed Size x Size grid indexed [y][x].
type Board[T any] [Size][Size]T

// Fill - returns a board with every cell set to value.
func Fill[T any](value T) Board[T] {
	var board Board[T]
	for y := range board {
		for x := range board[y] {
			board[y][x] = value
		}
	}

	return board
}

// MapBoard - converts every cell of a board.
func MapBoard[T, U any](board Board[T], convert func(T) U) Board[U] {
	var out Board[U]
	for y := range board {
		for x := range board[y] {
			out[y][x] = convert(board[y][x])
		}
	}

	return out
}

func (that *Board[T]) At(p Position) T {
	return that[p.Y][p.X]
}

func (that *Board[T]) Set(p Position, value T) {
	that[p.Y][p.X] = value
}

// Every - reports whether every cell satisfies the predicate.
func (that *Board[T]) Every(predicate func(T) bool) bool {
	for y := range that {
		for x := range that[y] {
			if !predicate(that[y][x]) {
				return false
			}
		}
	}

	return true
}

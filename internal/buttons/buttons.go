package buttons

import (
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
)

// Scan is a snapshot of the whole button matrix, true means pressed.
type Scan entity.Board[bool]

// ExactlyOne - the pressed position, only if exactly one row has exactly one
// pressed button and every other row is released. Anything else, including
// ghosting from several buttons held at once, yields false.
func (that Scan) ExactlyOne() (entity.Position, bool) {
	var (
		found entity.Position
		rows  int
	)

	for y, row := range that {
		pressed := 0
		column := 0
		for x, down := range row {
			if down {
				pressed++
				column = x
			}
		}

		switch {
		case pressed == 0:
			continue
		case pressed > 1:
			return entity.Position{}, false
		}

		rows++
		found = entity.Pos(column, y)
	}

	if rows != 1 {
		return entity.Position{}, false
	}

	return found, true
}

// Count - number of pressed buttons.
func (that Scan) Count() int {
	count := 0
	for _, row := range that {
		for _, down := range row {
			if down {
				count++
			}
		}
	}

	return count
}

// Scanner reads the matrix one select line at a time. There is no software
// debounce: a press has to be stable for the duration of one scan.
type Scanner struct {
	lines hardware.ButtonLines
}

func New(lines hardware.ButtonLines) *Scanner {
	return &Scanner{lines: lines}
}

// Scan - selects each row in turn and samples every column.
func (that *Scanner) Scan() Scan {
	var scan Scan

	for y := range entity.Size {
		for i, line := range that.lines.Select {
			if i == y {
				line.Set(that.lines.ActiveLevel)
			} else {
				line.Set(!that.lines.ActiveLevel)
			}
		}

		for x, column := range that.lines.Columns {
			scan[y][x] = column.Get() == that.lines.PressedLevel
		}
	}

	return scan
}

package display

import "github.com/rocketscienceinc/ledmatrix-console/internal/entity"

// Pixel is one bi-color LED. Both colors may be on at once.
type Pixel struct {
	Red  bool
	Blue bool
}

// Buffer is a full frame.
type Buffer = entity.Board[Pixel]

var Off = Pixel{}

// FromPlayer - red LED for Red, blue LED for Blue.
func FromPlayer(player entity.Player) Pixel {
	if player == entity.Red {
		return Pixel{Red: true}
	}
	return Pixel{Blue: true}
}

// FromCell - the occupant's color, off for an empty cell.
func FromCell(cell entity.Cell) Pixel {
	player, ok := cell.Player()
	if !ok {
		return Off
	}
	return FromPlayer(player)
}

// RedIf - red when the condition holds, blue otherwise.
func RedIf(cond bool) Pixel {
	return Pixel{Red: cond, Blue: !cond}
}

// And - keeps the pixel only while the condition holds.
func (that Pixel) And(cond bool) Pixel {
	return Pixel{Red: that.Red && cond, Blue: that.Blue && cond}
}

// Filter - And in place.
func (that *Pixel) Filter(cond bool) {
	that.Red = that.Red && cond
	that.Blue = that.Blue && cond
}

// WithPlayer - lights the player's color on top of whatever is already lit.
func (that Pixel) WithPlayer(player entity.Player) Pixel {
	if player == entity.Red {
		that.Red = true
	} else {
		that.Blue = true
	}
	return that
}

func (that Pixel) IsOff() bool {
	return !that.Red && !that.Blue
}

// Checkerboard - the pixel on every other cell. phase selects which half of
// the cells is lit; flipping it makes the pattern flash.
func Checkerboard(pixel Pixel, phase bool) Buffer {
	var buffer Buffer
	for _, p := range entity.Positions() {
		buffer.Set(p, pixel.And(parity(p, phase)))
	}

	return buffer
}

// TieCheckerboard - red and blue cells alternating, swapped by phase.
func TieCheckerboard(phase bool) Buffer {
	var buffer Buffer
	for _, p := range entity.Positions() {
		buffer.Set(p, RedIf(parity(p, phase)))
	}

	return buffer
}

// parity is true for odd cells during the first phase and even cells during the second.
func parity(p entity.Position, phase bool) bool {
	odd := p.Index()%2 == 1
	return odd == phase
}

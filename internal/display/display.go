package display

import (
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
)

type clock interface {
	Now() uint32
}

// Display multiplexes the LED matrix: every Show lights a single row, picked
// from the clock, and persistence of vision fills in the rest. The loop must
// call Show well within the flicker-fusion period.
type Display struct {
	buffer Buffer
	lines  hardware.DisplayLines
	clock  clock
}

func New(lines hardware.DisplayLines, clock clock, initial Buffer) *Display {
	return &Display{
		buffer: initial,
		lines:  lines,
		clock:  clock,
	}
}

// Write - replaces the whole frame.
func (that *Display) Write(buffer Buffer) {
	that.buffer = buffer
}

// Buffer - the frame currently shown.
func (that *Display) Buffer() Buffer {
	return that.buffer
}

// Show - renders the row for the current millisecond.
func (that *Display) Show() {
	y := int(that.clock.Now() % entity.Size)

	// columns go dark first so the previous row does not bleed into the new one
	for x := range entity.Size {
		that.lines.Red[x].Set(false)
		that.lines.Blue[x].Set(false)
	}

	for i, row := range that.lines.Rows {
		if i == y {
			row.Set(that.lines.RowActiveLevel)
		} else {
			row.Set(!that.lines.RowActiveLevel)
		}
	}

	for x, pixel := range that.buffer[y] {
		that.lines.Red[x].Set(pixel.Red)
		that.lines.Blue[x].Set(pixel.Blue)
	}
}

package simulator

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
)

type clock interface {
	Now() uint32
}

// Options tune the electrical model. Durations are in clock milliseconds.
type Options struct {
	// Hold is how long a key press keeps the button down.
	Hold uint32
	// Persistence is how long an LED stays visible after it was last driven.
	Persistence uint32
	// Seed feeds the noise read from the seed pin.
	Seed uint64
}

type role int

const (
	roleLEDRow role = iota
	roleRed
	roleBlue
	roleSelect
	roleColumn
	roleSeed
)

type line struct {
	role       role
	index      int
	configured bool
}

// Board is a host model of the console's electrics. It hands out pins through
// the PinProvider methods and tracks what the LED matrix shows and which
// buttons are held. Every method is safe for concurrent use.
type Board struct {
	mu sync.Mutex

	clock   clock
	wiring  hardware.Wiring
	options Options

	lines  map[int]*line
	levels map[int]bool

	// lastLit is when each LED color was last driven, lit marks colors driven at least once
	lastLit [entity.Size][entity.Size][2]uint32
	lit     [entity.Size][entity.Size][2]bool

	heldUntil [entity.Size][entity.Size]uint32
	held      [entity.Size][entity.Size]bool

	noise *rand.Rand
}

// New - a board wired as described. Every line starts inactive.
func New(clock clock, wiring hardware.Wiring, options Options) (*Board, error) {
	if err := wiring.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate wiring: %w", err)
	}

	board := &Board{
		clock:   clock,
		wiring:  wiring,
		options: options,
		lines:   make(map[int]*line),
		levels:  make(map[int]bool),
		noise:   rand.New(rand.NewPCG(options.Seed, options.Seed^0x9e3779b97f4a7c15)),
	}

	groups := []struct {
		role  role
		pins  []int
		level bool
	}{
		{roleLEDRow, wiring.LEDRows, !wiring.RowActiveHigh},
		{roleRed, wiring.RedColumns, false},
		{roleBlue, wiring.BlueColumns, false},
		{roleSelect, wiring.ButtonRows, !wiring.SelectActiveHigh},
		{roleColumn, wiring.ButtonColumns, !wiring.PressedHigh},
	}
	for _, group := range groups {
		for i, pin := range group.pins {
			board.lines[pin] = &line{role: group.role, index: i}
			board.levels[pin] = group.level
		}
	}

	if wiring.SeedPin >= 0 {
		board.lines[wiring.SeedPin] = &line{role: roleSeed}
	}

	return board, nil
}

func (that *Board) claim(pin int, allowed ...role) (*line, error) {
	l, ok := that.lines[pin]
	if !ok {
		return nil, fmt.Errorf("%w: %d", apperror.ErrPinNotFound, pin)
	}

	for _, r := range allowed {
		if l.role == r {
			if l.configured {
				return nil, fmt.Errorf("%w: %d", apperror.ErrPinInUse, pin)
			}
			l.configured = true

			return l, nil
		}
	}

	return nil, fmt.Errorf("%w: %d is not wired for this use", apperror.ErrPinNotFound, pin)
}

// Output - LED rows, LED columns and button select lines.
func (that *Board) Output(pin int, _ hardware.OutputMode) (hardware.OutputPin, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.claim(pin, roleLEDRow, roleRed, roleBlue, roleSelect); err != nil {
		return nil, err
	}

	return &outputPin{board: that, pin: pin}, nil
}

// Input - button matrix columns.
func (that *Board) Input(pin int) (hardware.InputPin, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	l, err := that.claim(pin, roleColumn)
	if err != nil {
		return nil, err
	}

	return &inputPin{board: that, column: l.index}, nil
}

// Random - the floating analog pin; its least significant bit is noise.
func (that *Board) Random(pin int) (hardware.RandomSource, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.claim(pin, roleSeed); err != nil {
		return nil, err
	}

	return &noisePin{board: that}, nil
}

// Press - holds the button at p down for the configured hold time.
func (that *Board) Press(p entity.Position) {
	if !p.Valid() {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.heldUntil[p.Y][p.X] = that.clock.Now() + that.options.Hold
	that.held[p.Y][p.X] = true
}

// Release - lets every button go.
func (that *Board) Release() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.held = [entity.Size][entity.Size]bool{}
}

// Frame - what an observer sees: every LED driven within the persistence window.
func (that *Board) Frame() display.Buffer {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.clock.Now()
	that.latch(now)

	var frame display.Buffer
	for _, p := range entity.Positions() {
		frame.Set(p, display.Pixel{
			Red:  that.visible(p, 0, now),
			Blue: that.visible(p, 1, now),
		})
	}

	return frame
}

func (that *Board) visible(p entity.Position, color int, now uint32) bool {
	return that.lit[p.Y][p.X][color] && now-that.lastLit[p.Y][p.X][color] <= that.options.Persistence
}

func (that *Board) set(pin int, high bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.levels[pin] = high
	that.latch(that.clock.Now())
}

// latch records every LED that is currently conducting. Caller holds mu.
func (that *Board) latch(now uint32) {
	for y, rowPin := range that.wiring.LEDRows {
		if that.levels[rowPin] != that.wiring.RowActiveHigh {
			continue
		}

		for x := range entity.Size {
			for color, pins := range [2][]int{that.wiring.RedColumns, that.wiring.BlueColumns} {
				if that.levels[pins[x]] {
					that.lit[y][x][color] = true
					that.lastLit[y][x][color] = now
				}
			}
		}
	}
}

// pressed - whether a held button at (x, y) is down. Caller holds mu.
func (that *Board) pressed(x, y int, now uint32) bool {
	return that.held[y][x] && int32(that.heldUntil[y][x]-now) > 0
}

// read - the level of a button column. Without diodes a column is pulled to
// the active level when any active select line reaches it through a chain of
// pressed buttons, which is how ghost presses appear. Caller holds mu.
func (that *Board) read(column int) bool {
	now := that.clock.Now()

	// nodes 0..Size-1 are select lines, Size..2*Size-1 are columns
	var visited [2 * entity.Size]bool
	queue := []int{entity.Size + column}
	visited[entity.Size+column] = true

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node < entity.Size && that.levels[that.wiring.ButtonRows[node]] == that.wiring.SelectActiveHigh {
			return that.wiring.PressedHigh
		}

		for other := range entity.Size {
			var next, x, y int
			if node < entity.Size {
				next, x, y = entity.Size+other, other, node
			} else {
				next, x, y = other, node-entity.Size, other
			}

			if !visited[next] && that.pressed(x, y, now) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return !that.wiring.PressedHigh
}

type outputPin struct {
	board *Board
	pin   int
}

func (that *outputPin) Set(high bool) {
	that.board.set(that.pin, high)
}

type inputPin struct {
	board  *Board
	column int
}

func (that *inputPin) Get() bool {
	that.board.mu.Lock()
	defer that.board.mu.Unlock()

	return that.board.read(that.column)
}

type noisePin struct {
	board *Board
}

func (that *noisePin) Bit() bool {
	that.board.mu.Lock()
	defer that.board.mu.Unlock()

	return that.board.noise.Uint32()&1 == 1
}

package hardware

import (
	"fmt"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

// OutputPin is a settable line. Setting a configured pin cannot fail.
type OutputPin interface {
	Set(high bool)
}

// InputPin is a readable line.
type InputPin interface {
	Get() bool
}

// RandomSource yields one random bit, used once at start-up.
type RandomSource interface {
	Bit() bool
}

// OutputMode tells the pin provider how to drive a line.
type OutputMode int

const (
	PushPull OutputMode = iota
	OpenDrain
)

// PinProvider configures pins by number. Implemented by the simulator board
// and by the TinyGo machine layer.
type PinProvider interface {
	Output(pin int, mode OutputMode) (OutputPin, error)
	Input(pin int) (InputPin, error)
	Random(pin int) (RandomSource, error)
}

// ButtonLines is everything the button scanner needs. ActiveLevel is driven on
// the selected row, PressedLevel is read on a column whose button is down.
type ButtonLines struct {
	Select       [entity.Size]OutputPin
	Columns      [entity.Size]InputPin
	ActiveLevel  bool
	PressedLevel bool
}

// DisplayLines is everything the LED driver needs. Column outputs are active high.
type DisplayLines struct {
	Rows           [entity.Size]OutputPin
	Red            [entity.Size]OutputPin
	Blue           [entity.Size]OutputPin
	RowActiveLevel bool
}

// Lines is the assembled hardware, handed to the drivers once at start-up.
type Lines struct {
	Buttons ButtonLines
	Display DisplayLines
	Seed    RandomSource
}

// Wiring maps the console's lines to pin numbers. The defaults are the
// Arduino Uno layout of the console board: A0-A3 are 14-17, A5 is 19.
type Wiring struct {
	LEDRows       []int `yaml:"led-rows" env-default:"8,9,10"`
	RedColumns    []int `yaml:"red-columns" env-default:"3,5,7"`
	BlueColumns   []int `yaml:"blue-columns" env-default:"2,4,6"`
	ButtonRows    []int `yaml:"button-rows" env-default:"14,15,16"`
	ButtonColumns []int `yaml:"button-columns" env-default:"11,12,17"`

	// SeedPin is the analog line sampled for the starting player, negative for none.
	SeedPin int `yaml:"seed-pin" env-default:"19"`

	RowActiveHigh    bool `yaml:"row-active-high" env-default:"false"`
	SelectActiveHigh bool `yaml:"select-active-high" env-default:"false"`
	PressedHigh      bool `yaml:"pressed-high" env-default:"false"`
}

// DefaultWiring - the wiring used when no configuration file is available.
func DefaultWiring() Wiring {
	return Wiring{
		LEDRows:       []int{8, 9, 10},
		RedColumns:    []int{3, 5, 7},
		BlueColumns:   []int{2, 4, 6},
		ButtonRows:    []int{14, 15, 16},
		ButtonColumns: []int{11, 12, 17},
		SeedPin:       19,
	}
}

// Validate - checks that every group has Size lines and no pin is used twice.
func (that *Wiring) Validate() error {
	groups := []struct {
		name string
		pins []int
	}{
		{"led-rows", that.LEDRows},
		{"red-columns", that.RedColumns},
		{"blue-columns", that.BlueColumns},
		{"button-rows", that.ButtonRows},
		{"button-columns", that.ButtonColumns},
	}

	seen := make(map[int]string)
	for _, group := range groups {
		if len(group.pins) != entity.Size {
			return fmt.Errorf("%w: %s has %d pins, want %d", apperror.ErrInvalidWiring, group.name, len(group.pins), entity.Size)
		}

		for _, pin := range group.pins {
			if owner, ok := seen[pin]; ok {
				return fmt.Errorf("%w: pin %d in %s and %s", apperror.ErrPinInUse, pin, owner, group.name)
			}
			seen[pin] = group.name
		}
	}

	if owner, ok := seen[that.SeedPin]; ok && that.SeedPin >= 0 {
		return fmt.Errorf("%w: seed pin %d in %s", apperror.ErrPinInUse, that.SeedPin, owner)
	}

	return nil
}

// Assemble - configures every pin of the wiring through the provider. It is
// called once; the returned lines are then moved into the drivers.
func Assemble(provider PinProvider, wiring Wiring) (Lines, error) {
	if err := wiring.Validate(); err != nil {
		return Lines{}, err
	}

	var (
		lines Lines
		err   error
	)

	lines.Display.RowActiveLevel = wiring.RowActiveHigh
	lines.Buttons.ActiveLevel = wiring.SelectActiveHigh
	lines.Buttons.PressedLevel = wiring.PressedHigh

	for i := range entity.Size {
		if lines.Display.Rows[i], err = provider.Output(wiring.LEDRows[i], OpenDrain); err != nil {
			return Lines{}, fmt.Errorf("failed to configure led row %d: %w", i, err)
		}

		if lines.Display.Red[i], err = provider.Output(wiring.RedColumns[i], PushPull); err != nil {
			return Lines{}, fmt.Errorf("failed to configure red column %d: %w", i, err)
		}

		if lines.Display.Blue[i], err = provider.Output(wiring.BlueColumns[i], PushPull); err != nil {
			return Lines{}, fmt.Errorf("failed to configure blue column %d: %w", i, err)
		}

		if lines.Buttons.Select[i], err = provider.Output(wiring.ButtonRows[i], OpenDrain); err != nil {
			return Lines{}, fmt.Errorf("failed to configure button row %d: %w", i, err)
		}

		if lines.Buttons.Columns[i], err = provider.Input(wiring.ButtonColumns[i]); err != nil {
			return Lines{}, fmt.Errorf("failed to configure button column %d: %w", i, err)
		}
	}

	lines.Seed = Fixed(false)
	if wiring.SeedPin >= 0 {
		if lines.Seed, err = provider.Random(wiring.SeedPin); err != nil {
			return Lines{}, fmt.Errorf("failed to configure seed pin: %w", err)
		}
	}

	return lines, nil
}

// Fixed is a random source that always yields the same bit.
type Fixed bool

func (that Fixed) Bit() bool {
	return bool(that)
}

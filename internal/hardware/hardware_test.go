package hardware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
)

var errBrokenPin = errors.New("broken pin")

type recordedPin struct {
	number int
	mode   OutputMode
	high   bool
}

func (that *recordedPin) Set(high bool) { that.high = high }
func (that *recordedPin) Get() bool     { return that.high }
func (that *recordedPin) Bit() bool     { return true }

type recordingProvider struct {
	pins   map[int]*recordedPin
	broken int
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{pins: make(map[int]*recordedPin), broken: -1}
}

func (that *recordingProvider) pin(number int, mode OutputMode) (*recordedPin, error) {
	if number == that.broken {
		return nil, errBrokenPin
	}
	p := &recordedPin{number: number, mode: mode}
	that.pins[number] = p
	return p, nil
}

func (that *recordingProvider) Output(pin int, mode OutputMode) (OutputPin, error) {
	return that.pin(pin, mode)
}

func (that *recordingProvider) Input(pin int) (InputPin, error) {
	return that.pin(pin, PushPull)
}

func (that *recordingProvider) Random(pin int) (RandomSource, error) {
	return that.pin(pin, PushPull)
}

func TestWiring_Validate(t *testing.T) {
	t.Run("Default wiring is valid", func(t *testing.T) {
		wiring := DefaultWiring()
		require.NoError(t, wiring.Validate())
	})

	t.Run("Rejects a group with the wrong number of pins", func(t *testing.T) {
		// Given: only two LED rows
		wiring := DefaultWiring()
		wiring.LEDRows = []int{8, 9}

		// When: validating
		err := wiring.Validate()

		// Then: the wiring is invalid
		require.ErrorIs(t, err, apperror.ErrInvalidWiring)
		assert.Contains(t, err.Error(), "led-rows")
	})

	t.Run("Rejects a pin used twice", func(t *testing.T) {
		// Given: a red column that is also a blue column
		wiring := DefaultWiring()
		wiring.RedColumns = []int{2, 5, 7}

		// When: validating
		err := wiring.Validate()

		// Then: the pin is reported in use
		require.ErrorIs(t, err, apperror.ErrPinInUse)
	})

	t.Run("Rejects a seed pin shared with the matrix", func(t *testing.T) {
		wiring := DefaultWiring()
		wiring.SeedPin = 8

		require.ErrorIs(t, wiring.Validate(), apperror.ErrPinInUse)
	})
}

func TestAssemble(t *testing.T) {
	t.Run("Configures every line in order", func(t *testing.T) {
		// Given: the default wiring and a recording provider
		provider := newRecordingProvider()
		wiring := DefaultWiring()

		// When: assembling the hardware
		lines, err := Assemble(provider, wiring)
		require.NoError(t, err)

		// Then: each line points at the right pin with the right mode
		for i := range wiring.LEDRows {
			assert.Equal(t, wiring.LEDRows[i], lines.Display.Rows[i].(*recordedPin).number)
			assert.Equal(t, OpenDrain, lines.Display.Rows[i].(*recordedPin).mode)
			assert.Equal(t, wiring.RedColumns[i], lines.Display.Red[i].(*recordedPin).number)
			assert.Equal(t, PushPull, lines.Display.Red[i].(*recordedPin).mode)
			assert.Equal(t, wiring.BlueColumns[i], lines.Display.Blue[i].(*recordedPin).number)
			assert.Equal(t, wiring.ButtonRows[i], lines.Buttons.Select[i].(*recordedPin).number)
			assert.Equal(t, OpenDrain, lines.Buttons.Select[i].(*recordedPin).mode)
			assert.Equal(t, wiring.ButtonColumns[i], lines.Buttons.Columns[i].(*recordedPin).number)
		}
		assert.False(t, lines.Display.RowActiveLevel)
		assert.False(t, lines.Buttons.ActiveLevel)
		assert.False(t, lines.Buttons.PressedLevel)
		assert.True(t, lines.Seed.Bit())
	})

	t.Run("Falls back to a fixed seed without a seed pin", func(t *testing.T) {
		// Given: no seed pin
		wiring := DefaultWiring()
		wiring.SeedPin = -1

		// When: assembling
		lines, err := Assemble(newRecordingProvider(), wiring)

		// Then: the seed always yields a clear bit
		require.NoError(t, err)
		assert.False(t, lines.Seed.Bit())
	})

	t.Run("Wraps provider errors", func(t *testing.T) {
		// Given: a provider that cannot configure pin 12
		provider := newRecordingProvider()
		provider.broken = 12

		// When: assembling
		_, err := Assemble(provider, DefaultWiring())

		// Then: the error names the failing line
		require.ErrorIs(t, err, errBrokenPin)
		assert.Contains(t, err.Error(), "button column 1")
	})
}

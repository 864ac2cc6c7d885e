//go:build tinygo && arduino

package hardware

import (
	"fmt"
	"machine"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
)

// arduinoPins - Uno header numbering: 0-13 digital, 14-19 are A0-A5.
var arduinoPins = [...]machine.Pin{
	machine.D0, machine.D1, machine.D2, machine.D3, machine.D4, machine.D5, machine.D6,
	machine.D7, machine.D8, machine.D9, machine.D10, machine.D11, machine.D12, machine.D13,
	machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3, machine.ADC4, machine.ADC5,
}

// Machine hands out the board's pins. Each pin can be configured once.
type Machine struct {
	used map[int]bool
}

func NewMachine() *Machine {
	machine.InitADC()

	return &Machine{used: make(map[int]bool)}
}

func (that *Machine) claim(pin int) (machine.Pin, error) {
	if pin < 0 || pin >= len(arduinoPins) {
		return machine.NoPin, fmt.Errorf("%w: %d", apperror.ErrPinNotFound, pin)
	}

	if that.used[pin] {
		return machine.NoPin, fmt.Errorf("%w: %d", apperror.ErrPinInUse, pin)
	}
	that.used[pin] = true

	return arduinoPins[pin], nil
}

func (that *Machine) Output(pin int, mode OutputMode) (OutputPin, error) {
	p, err := that.claim(pin)
	if err != nil {
		return nil, err
	}

	if mode == OpenDrain {
		out := &openDrainPin{pin: p}
		out.Set(true)

		return out, nil
	}

	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()

	return pushPullPin{pin: p}, nil
}

func (that *Machine) Input(pin int) (InputPin, error) {
	p, err := that.claim(pin)
	if err != nil {
		return nil, err
	}

	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	return inputPin{pin: p}, nil
}

// Random - an unconnected analog pin. The lowest converted bit is noise.
func (that *Machine) Random(pin int) (RandomSource, error) {
	p, err := that.claim(pin)
	if err != nil {
		return nil, err
	}

	adc := machine.ADC{Pin: p}
	adc.Configure(machine.ADCConfig{})

	return noisePin{adc: adc}, nil
}

type pushPullPin struct {
	pin machine.Pin
}

func (that pushPullPin) Set(high bool) {
	that.pin.Set(high)
}

// openDrainPin pulls low when set low and floats otherwise.
type openDrainPin struct {
	pin machine.Pin
}

func (that *openDrainPin) Set(high bool) {
	if high {
		that.pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		return
	}

	that.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	that.pin.Low()
}

type inputPin struct {
	pin machine.Pin
}

func (that inputPin) Get() bool {
	return that.pin.Get()
}

type noisePin struct {
	adc machine.ADC
}

// Bit - Get scales the 10 bit conversion to 16 bits, so the raw LSB is bit 6.
func (that noisePin) Bit() bool {
	return that.adc.Get()>>6&1 == 1
}

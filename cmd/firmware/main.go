//go:build tinygo && arduino

// Command firmware runs the console on an Arduino Uno. The game is chosen at
// build time: tinygo flash -target arduino -ldflags "-X main.game=hexapawn" ./cmd/firmware
package main

import (
	"context"
	"log/slog"
	"machine"
	"time"

	"github.com/rocketscienceinc/ledmatrix-console/internal/clock"
	"github.com/rocketscienceinc/ledmatrix-console/internal/console"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
)

// Timer 2 with a /256 prescaler firing every 250 counts at 16 MHz.
const (
	prescaler   = 256
	timerCounts = 250
	cpuHz       = 16_000_000
)

var (
	game  = "tictactoe"
	ticks = clock.New(clock.Increment(prescaler, timerCounts, cpuHz))
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 57600})
	logger := console.NewSerialLogger(machine.Serial, slog.LevelInfo)

	startTimer()

	// the loop runs back to back and never starts a goroutine, so it works
	// without a scheduler
	device, err := console.New(logger, ticks, hardware.NewMachine(), console.Settings{
		Wiring: hardware.DefaultWiring(),
		Timing: engine.DefaultTiming(),
	})
	if err != nil {
		logger.Error("could not start console", "error", err)
		halt()
	}

	if err = device.Manager.Play(context.Background(), game); err != nil {
		logger.Error("game stopped", "error", err)
	}

	halt()
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}

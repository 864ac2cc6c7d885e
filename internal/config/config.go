package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
	"github.com/rocketscienceinc/ledmatrix-console/internal/clock"
	"github.com/rocketscienceinc/ledmatrix-console/internal/console"
	"github.com/rocketscienceinc/ledmatrix-console/internal/engine"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hardware"
	"github.com/rocketscienceinc/ledmatrix-console/internal/simulator"
)

type Config struct {
	LogLevel  string          `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile   string          `yaml:"log-file" env:"LOG_FILE" env-default:"console.log"`
	Game      string          `yaml:"game" env:"GAME" env-default:"tictactoe"`
	Timing    Timing          `yaml:"timing"`
	Wiring    hardware.Wiring `yaml:"wiring"`
	Simulator Simulator       `yaml:"simulator"`
}

// Timing - the tick interrupt is described the way the timer is programmed.
type Timing struct {
	Prescaler         uint32        `yaml:"prescaler" env-default:"256"`
	TimerCounts       uint32        `yaml:"timer-counts" env-default:"250"`
	CPUHz             uint32        `yaml:"cpu-hz" env-default:"16000000"`
	PresentMS         uint32        `yaml:"present-ms" env-default:"1000"`
	FlashHalfPeriodMS uint32        `yaml:"flash-half-period-ms" env-default:"500"`
	LoopPeriod        time.Duration `yaml:"loop-period" env-default:"1ms"`
}

type Simulator struct {
	HoldMS        uint32        `yaml:"hold-ms" env-default:"150"`
	PersistenceMS uint32        `yaml:"persistence-ms" env-default:"20"`
	Refresh       time.Duration `yaml:"refresh" env-default:"33ms"`
	ReadTimeout   time.Duration `yaml:"read-timeout" env-default:"100ms"`
	Seed          uint64        `yaml:"seed" env:"SIMULATOR_SEED" env-default:"0"`
}

// Load - reads an optional .env next to the config file, then the config
// file itself. Environment variables win over the file.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load env file: %w", err)
	}

	config := &Config{}
	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.TickStep() == 0 {
		return nil, fmt.Errorf("%w: timer interval is below one millisecond", apperror.ErrInvalidTiming)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// TickStep - milliseconds added to the clock on every timer interrupt.
func (that *Config) TickStep() uint32 {
	return clock.Increment(that.Timing.Prescaler, that.Timing.TimerCounts, that.Timing.CPUHz)
}

// TickPeriod - the host stand-in for the timer interrupt.
func (that *Config) TickPeriod() time.Duration {
	return time.Duration(that.TickStep()) * time.Millisecond
}

// Console - the device settings.
func (that *Config) Console() console.Settings {
	return console.Settings{
		Wiring:     that.Wiring,
		Timing:     that.Timing.Engine(),
		LoopPeriod: that.Timing.LoopPeriod,
	}
}

// Engine - the game timing in clock milliseconds.
func (that *Timing) Engine() engine.Timing {
	return engine.Timing{
		Present:         that.PresentMS,
		FlashHalfPeriod: that.FlashHalfPeriodMS,
	}
}

// Options - the electrical model settings.
func (that *Simulator) Options() simulator.Options {
	return simulator.Options{
		Hold:        that.HoldMS,
		Persistence: that.PersistenceMS,
		Seed:        that.Seed,
	}
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/ledmatrix-console/internal/clock"
	"github.com/rocketscienceinc/ledmatrix-console/internal/config"
	"github.com/rocketscienceinc/ledmatrix-console/internal/console"
	"github.com/rocketscienceinc/ledmatrix-console/internal/simulator"
)

// RunApp - runs the console on the host simulator.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	ticks := clock.New(conf.TickStep())

	board, err := simulator.New(ticks, conf.Wiring, conf.Simulator.Options())
	if err != nil {
		return fmt.Errorf("could not create simulator board: %w", err)
	}

	device, err := console.New(logger, ticks, board, conf.Console())
	if err != nil {
		return err
	}

	tty, err := simulator.OpenTTY(conf.Simulator.ReadTimeout)
	if err != nil {
		return fmt.Errorf("could not open terminal: %w", err)
	}

	defer func() {
		if err = tty.Close(); err != nil {
			log.Error("could not restore terminal", "error", err)
		}
	}()

	// run the tick source
	go func() {
		log.Info("Starting clock", "step_ms", ticks.Step())
		ticks.Run(ctx, conf.TickPeriod())
	}()

	// run the renderer
	renderErrCh := make(chan error, 1)
	go func() {
		terminal := simulator.NewTerminal(logger, os.Stdout, board, conf.Game)
		if renderErr := terminal.Run(ctx, conf.Simulator.Refresh); renderErr != nil {
			log.Error("Renderer error", "error", renderErr)
			renderErrCh <- renderErr
		}
	}()

	// run the keyboard
	keyErrCh := make(chan error, 1)
	go func() {
		keyboard := simulator.NewKeyboard(logger, board)
		if keyErr := keyboard.Run(ctx, tty); keyErr != nil {
			log.Error("Keyboard error", "error", keyErr)
			keyErrCh <- keyErr
		}
	}()

	// run the game
	gameErrCh := make(chan error, 1)
	go func() {
		gameErrCh <- device.Manager.Play(ctx, conf.Game)
	}()

	select {
	case err = <-renderErrCh:
		return fmt.Errorf("renderer error: %w", err)
	case err = <-keyErrCh:
		return fmt.Errorf("keyboard error: %w", err)
	case err = <-gameErrCh:
		if err != nil {
			return fmt.Errorf("game error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

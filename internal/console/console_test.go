package console_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
	"github.com/rocketscienceinc/ledmatrix-console/internal/hexapawn"
	"github.com/rocketscienceinc/ledmatrix-console/internal/tictactoe"
	"github.com/rocketscienceinc/ledmatrix-console/testing/suite"
)

// midFirstHalf - a clock reading well inside the next first flash half-cycle.
func midFirstHalf(now uint32) uint32 {
	return (now/1000+1)*1000 + 250
}

func TestConsole_TicTacToe(t *testing.T) {
	s := suite.New(t)
	game := s.Start(tictactoe.Name).(*tictactoe.Game)

	t.Run("Shows the starting player before the first move", func(t *testing.T) {
		// When: half of the presentation time has passed
		s.AdvanceTo(500)

		// Then: the whole matrix glows red
		assert.Equal(t, entity.Fill(display.FromPlayer(entity.Red)), s.Board.Frame())
		assert.Equal(t, tictactoe.PresentCurrentPlayer, game.State().Phase)
	})

	t.Run("Red wins on the top row", func(t *testing.T) {
		// Given: the presentation is over
		s.AdvanceTo(1100)
		require.Equal(t, tictactoe.WaitForMove, game.State().Phase)

		// When: red takes the top row while blue plays the middle row
		s.Tap(entity.Pos(0, 0))
		s.Tap(entity.Pos(0, 1))
		s.Tap(entity.Pos(1, 0))
		s.Tap(entity.Pos(1, 1))

		board := game.Board()
		assert.Equal(t, entity.Mark(entity.Red), board[0][1])
		assert.Equal(t, entity.Mark(entity.Blue), board[1][1])
		assert.Equal(t, display.FromPlayer(entity.Blue), s.Board.Frame()[1][0])

		s.Tap(entity.Pos(2, 0))

		// Then: red is the winner and the red checkerboard flashes
		assert.Equal(t, tictactoe.State{Phase: tictactoe.DisplayWinner, Winner: entity.Red}, game.State())

		s.AdvanceTo(midFirstHalf(s.Clock.Now()))
		assert.Equal(t, display.Checkerboard(display.FromPlayer(entity.Red), true), s.Board.Frame())

		s.Advance(500)
		assert.Equal(t, display.Checkerboard(display.FromPlayer(entity.Red), false), s.Board.Frame())
	})

	t.Run("The finished game ignores buttons", func(t *testing.T) {
		before := game.Board()

		s.Tap(entity.Pos(2, 2))

		assert.Equal(t, before, game.Board())
		assert.True(t, game.Finished())
	})
}

func TestConsole_Hexapawn(t *testing.T) {
	// Given: hexapawn past its presentation
	s := suite.New(t)
	game := s.Start(hexapawn.Name).(*hexapawn.Game)
	s.AdvanceTo(1100)
	require.Equal(t, hexapawn.WaitForPick, game.State().Phase)

	// When: red advances (1,0) to (1,1) and blue captures from (0,2)
	s.Tap(entity.Pos(1, 0))
	s.Tap(entity.Pos(1, 1))
	s.Tap(entity.Pos(0, 2))
	s.Tap(entity.Pos(1, 1))

	// Then: the capture is on the board and on the matrix
	pawns := game.Pawns()
	assert.Equal(t, 5, pawns.Len())
	assert.True(t, pawns.Contains(hexapawn.NewPawn(1, 1, entity.Blue)))
	assert.Equal(t, entity.Red, game.CurrentPlayer())
	assert.Equal(t, hexapawn.WaitForPick, game.State().Phase)
	assert.Equal(t, pawns.Buffer(), s.Board.Frame())
}

func TestConsole_PlayOnInterruptClock(t *testing.T) {
	// Given: the console loop running without a period, the clock moved only
	// from outside as a timer interrupt would
	s := suite.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := make(chan error, 1)
	go func() { done <- s.Console.Manager.Play(ctx, tictactoe.Name) }()

	// When: the interrupt keeps ticking past the presentation
	// Then: the loop follows the clock and shows the empty board
	require.Eventually(t, func() bool {
		s.Clock.Tick()
		return s.Clock.Now() > 1100 && s.Board.Frame() == display.Buffer{}
	}, 5*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

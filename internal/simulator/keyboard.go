package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/term"

	"github.com/rocketscienceinc/ledmatrix-console/internal/apperror"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

// keyRows is the legend drawn next to the matrix.
var keyRows = [entity.Size]string{
	"q w e   7 8 9",
	"a s d   4 5 6",
	"z x c   1 2 3",
}

var keys = map[byte]entity.Position{
	'q': entity.Pos(0, 0), 'w': entity.Pos(1, 0), 'e': entity.Pos(2, 0),
	'a': entity.Pos(0, 1), 's': entity.Pos(1, 1), 'd': entity.Pos(2, 1),
	'z': entity.Pos(0, 2), 'x': entity.Pos(1, 2), 'c': entity.Pos(2, 2),

	'7': entity.Pos(0, 0), '8': entity.Pos(1, 0), '9': entity.Pos(2, 0),
	'4': entity.Pos(0, 1), '5': entity.Pos(1, 1), '6': entity.Pos(2, 1),
	'1': entity.Pos(0, 2), '2': entity.Pos(1, 2), '3': entity.Pos(2, 2),
}

// KeyPosition - the button a key stands for. Upper case works too.
func KeyPosition(key byte) (entity.Position, bool) {
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}

	p, ok := keys[key]
	return p, ok
}

type presser interface {
	Press(p entity.Position)
}

// Keyboard turns key strokes into button presses.
type Keyboard struct {
	logger *slog.Logger
	board  presser
}

func NewKeyboard(logger *slog.Logger, board presser) *Keyboard {
	return &Keyboard{
		logger: logger.With("component", "keyboard"),
		board:  board,
	}
}

// Run - reads keys until the context is done or the input fails. The reader
// is expected to return regularly (a read timeout) so cancellation is noticed.
func (that *Keyboard) Run(ctx context.Context, input io.Reader) error {
	log := that.logger.With("method", "Run")

	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := input.Read(buf)
		for _, key := range buf[:n] {
			if p, ok := KeyPosition(key); ok {
				log.Debug("button pressed", "x", p.X, "y", p.Y)
				that.board.Press(p)
			}
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read keyboard: %w", err)
		}
	}

	return nil
}

// TTY is the controlling terminal in cbreak mode, so keys arrive one by one
// and ctrl+c still raises SIGINT.
type TTY struct {
	*term.Term
}

// OpenTTY - puts the controlling terminal into cbreak mode with a read timeout.
// Restore it with Close.
func OpenTTY(readTimeout time.Duration) (*TTY, error) {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrNoTerminal, err)
	}

	if err = t.SetReadTimeout(readTimeout); err != nil {
		_ = t.Restore()
		_ = t.Close()

		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return &TTY{Term: t}, nil
}

// Close - restores the terminal mode and releases it.
func (that *TTY) Close() error {
	if err := that.Term.Restore(); err != nil {
		_ = that.Term.Close()

		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	return that.Term.Close()
}

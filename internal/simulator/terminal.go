package simulator

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
)

type framer interface {
	Frame() display.Buffer
}

// Terminal draws the LED matrix with terminal colors.
type Terminal struct {
	logger *slog.Logger
	output *termenv.Output
	board  framer
	title  string
}

func NewTerminal(logger *slog.Logger, w io.Writer, board framer, title string, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{
		logger: logger.With("component", "terminal"),
		output: termenv.NewOutput(w, opts...),
		board:  board,
		title:  title,
	}
}

// Run - redraws every refresh period until the context is done.
func (that *Terminal) Run(ctx context.Context, refresh time.Duration) error {
	log := that.logger.With("method", "Run")

	that.output.HideCursor()
	that.output.ClearScreen()
	defer that.output.ShowCursor()

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	log.Debug("rendering started", "refresh", refresh.String())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			that.Render(that.board.Frame())
		}
	}
}

// Render - draws one frame at the top left of the screen.
func (that *Terminal) Render(frame display.Buffer) {
	var sb strings.Builder

	sb.WriteString(that.title)
	sb.WriteString("\n\n")

	for y := range frame {
		sb.WriteString("  ")
		for x := range frame[y] {
			sb.WriteString(that.cell(frame[y][x]))
			sb.WriteString(" ")
		}
		sb.WriteString("   ")
		sb.WriteString(keyRows[y])
		sb.WriteString("\n")
	}

	sb.WriteString("\nctrl+c to quit\n")

	that.output.MoveCursor(1, 1)
	_, _ = io.WriteString(that.output, sb.String())
}

func (that *Terminal) cell(pixel display.Pixel) string {
	var (
		glyph string
		color string
	)

	switch {
	case pixel.Red && pixel.Blue:
		glyph, color = "[M]", "#c040ff"
	case pixel.Red:
		glyph, color = "[R]", "#ff3030"
	case pixel.Blue:
		glyph, color = "[B]", "#3070ff"
	default:
		return "[ ]"
	}

	return that.output.String(glyph).Foreground(that.output.Color(color)).Bold().String()
}

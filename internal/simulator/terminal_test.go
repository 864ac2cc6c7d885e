package simulator

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/ledmatrix-console/internal/display"
	"github.com/rocketscienceinc/ledmatrix-console/internal/entity"
)

type staticFrame display.Buffer

func (that staticFrame) Frame() display.Buffer {
	return display.Buffer(that)
}

func TestTerminal_Render(t *testing.T) {
	// Given: a frame using every pixel kind, drawn without colors
	var frame display.Buffer
	frame.Set(entity.Pos(0, 0), display.Pixel{Red: true})
	frame.Set(entity.Pos(1, 0), display.Pixel{Blue: true})
	frame.Set(entity.Pos(2, 0), display.Pixel{Red: true, Blue: true})

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	terminal := NewTerminal(logger, &out, staticFrame(frame), "hexapawn", termenv.WithProfile(termenv.Ascii))

	// When: rendering
	terminal.Render(frame)

	// Then: each row shows its cells next to the key legend
	text := out.String()
	assert.Contains(t, text, "hexapawn")
	assert.Contains(t, text, "[R] [B] [M]")
	assert.Contains(t, text, "[ ] [ ] [ ]    a s d   4 5 6")
	assert.Equal(t, 1, strings.Count(text, "[R]"))
}

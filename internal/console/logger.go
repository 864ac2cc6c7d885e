package console

import (
	"context"
	"io"
	"log/slog"
)

// NewSerialLogger - a logger for the firmware's serial port. It writes
// "LEVEL message" lines and drops attributes: the text and JSON handlers
// format through reflection, which the ATmega328P has no room for.
func NewSerialLogger(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(&serialHandler{out: out, level: level})
}

type serialHandler struct {
	out   io.Writer
	level slog.Level
}

func (that *serialHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= that.level
}

func (that *serialHandler) Handle(_ context.Context, record slog.Record) error {
	_, _ = io.WriteString(that.out, record.Level.String())
	_, _ = io.WriteString(that.out, " ")
	_, _ = io.WriteString(that.out, record.Message)
	_, err := io.WriteString(that.out, "\r\n")

	return err
}

func (that *serialHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return that
}

func (that *serialHandler) WithGroup(_ string) slog.Handler {
	return that
}

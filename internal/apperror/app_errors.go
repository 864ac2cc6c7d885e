package apperror

import "errors"

var (
	ErrUnknownGame   = errors.New("unknown game")
	ErrInvalidWiring = errors.New("invalid wiring")
	ErrPinNotFound   = errors.New("pin not found")
	ErrPinInUse      = errors.New("pin is already in use")
	ErrInvalidTiming = errors.New("invalid timing")
	ErrNoTerminal    = errors.New("terminal is not available")
)

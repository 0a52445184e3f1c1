package gcode

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDirective is returned for a ;TIME:, ;LAYER: or move line
	// whose value cannot be parsed.
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrZeroVelocity is returned when a move covers a distance while the
	// feedrate is not positive.
	ErrZeroVelocity = errors.New("move with zero velocity")

	// ErrLayerOutOfRange is returned for a ;LAYER: index above MaxLayer.
	ErrLayerOutOfRange = errors.New("layer index out of range")
)

// ParseError describes the line that stopped parsing.
type ParseError struct {
	// Line is the 1-based line number.
	Line int

	// Text is the offending line.
	Text string

	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

package gcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	timePrefix  = ";TIME:"
	layerPrefix = ";LAYER:"
)

// MaxLayer is the highest layer index accepted. Layer records are stored
// densely, so the cap bounds memory for a single bogus marker.
const MaxLayer = 1 << 20

// decimalNumber is the only number syntax accepted in move words. It keeps
// out Go literal forms such as 1_0 or 0x1p3 that strconv would take.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// FeedrateUnit selects how F values are converted to millimeters per second.
type FeedrateUnit string

const (
	// FeedrateMMPerMinute reads F as millimeters per minute.
	FeedrateMMPerMinute FeedrateUnit = "mm/min"

	// FeedrateMoai reads F the way the Peopoly Moai firmware does: the value
	// times 60 is the speed in micrometers per second.
	FeedrateMoai FeedrateUnit = "moai"
)

// Valid reports whether u is a known unit.
func (u FeedrateUnit) Valid() bool {
	return u == FeedrateMMPerMinute || u == FeedrateMoai
}

// velocity converts a raw F value to millimeters per second.
func (u FeedrateUnit) velocity(f float64) float64 {
	if u == FeedrateMoai {
		return f * 60 / 1000
	}
	return f / 60
}

// Option configures a parse.
type Option func(*parser)

// WithPlaceholderEstimate sets the ;TIME: value that means "no estimate".
func WithPlaceholderEstimate(v uint32) Option {
	return func(p *parser) {
		p.placeholder = v
	}
}

// WithFeedrateUnit sets the unit of F values (default mm/min).
func WithFeedrateUnit(u FeedrateUnit) Option {
	return func(p *parser) {
		if u.Valid() {
			p.unit = u
		}
	}
}

// WithLayerHook registers fn to be called for every layer marker.
func WithLayerHook(fn func(layer int)) Option {
	return func(p *parser) {
		p.onLayer = fn
	}
}

// headState is the print head as of the last processed line.
type headState struct {
	x, y      float64
	velocity  float64 // mm/s
	layer     int
	haveLayer bool
}

type parser struct {
	placeholder uint32
	unit        FeedrateUnit
	onLayer     func(int)

	head   headState
	result *Result
}

// Parse reads gcode from r and returns the per-layer totals.
// The first malformed line aborts the parse with a *ParseError.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Result, error) {
	p := &parser{
		placeholder: DefaultPlaceholderEstimate,
		unit:        FeedrateMMPerMinute,
		result:      &Result{},
	}
	for _, opt := range opts {
		opt(p)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	lineNum := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNum++
		line := scanner.Text()
		if err := p.line(line); err != nil {
			return nil, &ParseError{Line: lineNum, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading gcode: %w", err)
	}

	return p.result, nil
}

// ParseFile opens path and parses it.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening gcode file %s: %w", path, err)
	}
	defer f.Close()

	res, err := Parse(ctx, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}

func (p *parser) line(line string) error {
	switch {
	case strings.HasPrefix(line, timePrefix):
		return p.timeEstimate(line[len(timePrefix):])
	case strings.HasPrefix(line, layerPrefix):
		return p.layerMarker(line[len(layerPrefix):])
	case strings.HasPrefix(line, "G0 "), strings.HasPrefix(line, "G1 "):
		return p.move(line)
	default:
		return nil
	}
}

func (p *parser) timeEstimate(s string) error {
	v, err := parseUnsigned(s, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid time estimate %q", ErrMalformedDirective, s)
	}
	if uint32(v) == p.placeholder {
		return nil
	}
	d := time.Duration(v) * time.Second
	p.result.SlicerEstimate = &d
	return nil
}

func (p *parser) layerMarker(s string) error {
	v, err := parseUnsigned(s, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid layer %q", ErrMalformedDirective, s)
	}
	if v > MaxLayer {
		return fmt.Errorf("%w: %d (max %d)", ErrLayerOutOfRange, v, MaxLayer)
	}
	p.head.layer = int(v)
	p.head.haveLayer = true
	if p.onLayer != nil {
		p.onLayer(p.head.layer)
	}
	return nil
}

func (p *parser) move(line string) error {
	if !p.head.haveLayer {
		return nil
	}

	x, y, velocity := p.head.x, p.head.y, p.head.velocity
	for _, field := range strings.Fields(line) {
		var dst *float64
		switch field[0] {
		case 'X':
			dst = &x
		case 'Y':
			dst = &y
		case 'F':
			dst = &velocity
		default:
			continue
		}

		v, err := parseDecimal(field[1:])
		if err != nil {
			return fmt.Errorf("%w: invalid %c value %q", ErrMalformedDirective, field[0], field[1:])
		}
		if field[0] == 'F' {
			v = p.unit.velocity(v)
		}
		*dst = v
	}

	distance := math.Hypot(x-p.head.x, y-p.head.y)
	p.head.x, p.head.y, p.head.velocity = x, y, velocity

	var elapsed float64
	if distance > 0 {
		if velocity <= 0 {
			return fmt.Errorf("%w: %.3fmm at feedrate %g", ErrZeroVelocity, distance, velocity)
		}
		elapsed = distance / velocity
	}

	rec := p.result.layer(p.head.layer)
	rec.Distance += distance
	rec.Time += elapsed
	return nil
}

// parseUnsigned parses a base-10 unsigned integer with an optional leading '+'.
func parseUnsigned(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, bitSize)
}

// parseDecimal parses a finite plain decimal number.
func parseDecimal(s string) (float64, error) {
	if !decimalNumber.MatchString(s) {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/ccollicutt/moaitime/pkg/estimate"
	"github.com/ccollicutt/moaitime/pkg/gcode"
)

// Default values for configuration.
const (
	DefaultLayerChangeTime     = estimate.DefaultLayerChange
	DefaultPlaceholderEstimate = gcode.DefaultPlaceholderEstimate
	DefaultFeedrateUnit        = gcode.FeedrateMMPerMinute
	DefaultDivergenceThreshold = 0.1
	DefaultWebhookTimeout      = 10 * time.Second
)

// Environment variable names.
const (
	EnvLayerChangeTime = "MOAITIME_LAYER_CHANGE_TIME"
	EnvFeedrateUnit    = "MOAITIME_FEEDRATE_UNIT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LayerChangeTime:     DefaultLayerChangeTime,
		PlaceholderEstimate: DefaultPlaceholderEstimate,
		FeedrateUnit:        DefaultFeedrateUnit,
		DivergenceThreshold: DefaultDivergenceThreshold,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if v := os.Getenv(EnvLayerChangeTime); v != "" {
		d, err := parseLayerChange(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLayerChangeTime, err)
		}
		c.LayerChangeTime = d
	}
	if v := os.Getenv(EnvFeedrateUnit); v != "" {
		c.FeedrateUnit = gcode.FeedrateUnit(v)
	}
	return nil
}

// parseLayerChange accepts a duration string ("9.5s") or bare seconds ("9.5").
func parseLayerChange(s string) (time.Duration, error) {
	if d, err := parseSeconds(s); err == nil {
		return d, nil
	}
	return time.ParseDuration(s)
}

// parseSeconds parses a finite number of seconds.
func parseSeconds(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) > math.MaxInt64/float64(time.Second) {
		return 0, fmt.Errorf("%s seconds is out of range", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

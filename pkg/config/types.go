// Package config provides printer profile loading and validation for moaitime.
package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/moaitime/pkg/gcode"
)

// Config is the printer profile loaded from YAML.
type Config struct {
	// LayerChangeTime is the overhead the printer spends on every layer
	// (peel, lift, settle) on top of the laser time. A bare number is
	// read as seconds.
	LayerChangeTime time.Duration `yaml:"layer_change_time"`

	// PlaceholderEstimate is the ;TIME: value that means the slicer did not
	// estimate anything.
	PlaceholderEstimate uint32 `yaml:"placeholder_estimate"`

	// FeedrateUnit is the unit of F values, "mm/min" or "moai".
	FeedrateUnit gcode.FeedrateUnit `yaml:"feedrate_unit"`

	// DivergenceThreshold is the relative difference between the slicer
	// estimate and ours above which a file is flagged.
	DivergenceThreshold float64 `yaml:"divergence_threshold"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// UnmarshalYAML decodes a profile, reading a bare-number layer_change_time
// as seconds.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "layer_change_time" {
				secondsToDuration(node.Content[i+1])
			}
		}
	}

	type plain Config
	return node.Decode((*plain)(c))
}

// secondsToDuration rewrites a numeric scalar into a duration string.
// Anything else is left for the regular decoder to accept or reject.
func secondsToDuration(n *yaml.Node) {
	if n.Kind != yaml.ScalarNode {
		return
	}
	if tag := n.ShortTag(); tag != "!!int" && tag != "!!float" {
		return
	}
	d, err := parseSeconds(n.Value)
	if err != nil {
		return
	}
	n.Value = d.String()
	n.Tag = "!!str"
}

// ParseOptions returns the gcode options selected by the profile.
func (c *Config) ParseOptions() []gcode.Option {
	return []gcode.Option{
		gcode.WithPlaceholderEstimate(c.PlaceholderEstimate),
		gcode.WithFeedrateUnit(c.FeedrateUnit),
	}
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnDivergence fires only when a slicer estimate diverges
	// beyond the threshold (default).
	WebhookTriggerOnDivergence WebhookTrigger = "on_divergence"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for sending estimates.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_divergence" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

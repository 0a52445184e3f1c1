package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := buf.String(); got != "moaitime dev\n" {
		t.Errorf("output = %q, want %q", got, "moaitime dev\n")
	}
}

func TestRunValidate_Success(t *testing.T) {
	config := `layer_change_time: 8s
feedrate_unit: moai
webhooks:
  - name: farm
    url: https://hooks.example.com/prints
    trigger: always
`
	configPath := writeGcode(t, t.TempDir(), "printer.yaml", config)

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Configuration valid!",
		"Layer change:         8.0000 seconds",
		"Feedrate unit:        moai",
		"1. farm (always)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeGcode(t, t.TempDir(), "printer.yaml", "layer_change_time: -1s\n")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected validation error")
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"/nonexistent/printer.yaml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoggerFor(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"WARN", false},
		{"error", false},
		{"chatty", true},
	}
	for _, tt := range tests {
		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().String("log-level", tt.level, "")
		cmd.SetErr(&bytes.Buffer{})

		_, err := loggerFor(cmd)
		if (err != nil) != tt.wantErr {
			t.Errorf("loggerFor(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestLoggerFor_WritesToStderr(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("log-level", "debug", "")
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	logger, err := loggerFor(cmd)
	if err != nil {
		t.Fatalf("loggerFor() error = %v", err)
	}
	logger.Debug("parsed", "layers", 3)
	if !strings.Contains(stderr.String(), "layers=3") {
		t.Errorf("stderr = %q, want debug record", stderr.String())
	}
}

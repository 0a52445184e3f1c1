package estimate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/moaitime/pkg/gcode"
)

func TestFromSeconds(t *testing.T) {
	tests := []struct {
		secs float64
		want time.Duration
	}{
		{0, 0},
		{1, time.Second},
		{9.5, 9500 * time.Millisecond},
		{1.0000019, time.Second + time.Microsecond},
		{0.1234567, 123456 * time.Microsecond},
		{3661.25, 3661*time.Second + 250*time.Millisecond},
	}
	for _, tt := range tests {
		if got := FromSeconds(tt.secs); got != tt.want {
			t.Errorf("FromSeconds(%v) = %v, want %v", tt.secs, got, tt.want)
		}
	}
}

func TestNewModel_Default(t *testing.T) {
	if m := NewModel(-time.Second); m.LayerChange != DefaultLayerChange {
		t.Errorf("LayerChange = %v, want %v", m.LayerChange, DefaultLayerChange)
	}
	if m := NewModel(3 * time.Second); m.LayerChange != 3*time.Second {
		t.Errorf("LayerChange = %v, want 3s", m.LayerChange)
	}
}

func TestNewModel_ZeroLayerChange(t *testing.T) {
	m := NewModel(0)
	if m.LayerChange != 0 {
		t.Fatalf("LayerChange = %v, want 0", m.LayerChange)
	}

	r := &gcode.Result{Layers: []gcode.LayerRecord{{Time: 1.5}, {Time: 2}}}
	if got := m.LayerChangeTime(r); got != 0 {
		t.Errorf("LayerChangeTime() = %v, want 0", got)
	}
	if got, want := m.TotalTime(r), 3500*time.Millisecond; got != want {
		t.Errorf("TotalTime() = %v, want %v", got, want)
	}
}

func TestModel_LayerChangeTime(t *testing.T) {
	m := NewModel(DefaultLayerChange)
	tests := []struct {
		layers int
		want   time.Duration
	}{
		{0, 0},
		{1, 9500 * time.Millisecond},
		{4, 38 * time.Second},
		{1001, 9509500 * time.Millisecond},
	}
	for _, tt := range tests {
		r := &gcode.Result{Layers: make([]gcode.LayerRecord, tt.layers)}
		if got := m.LayerChangeTime(r); got != tt.want {
			t.Errorf("LayerChangeTime(%d layers) = %v, want %v", tt.layers, got, tt.want)
		}
	}
}

func TestModel_SparseLayersCountTowardsLayerChange(t *testing.T) {
	content := ";LAYER:0\nG1 X1 F60\n;LAYER:3\nG1 X2\n"
	r, err := gcode.Parse(context.Background(), strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	m := NewModel(DefaultLayerChange)
	if got, want := m.LayerChangeTime(r), 38*time.Second; got != want {
		t.Errorf("LayerChangeTime() = %v, want %v", got, want)
	}
	if got, want := m.LaserTime(r), 2*time.Second; got != want {
		t.Errorf("LaserTime() = %v, want %v", got, want)
	}
}

func TestModel_TotalIsSumOfParts(t *testing.T) {
	results := []*gcode.Result{
		{},
		{Layers: []gcode.LayerRecord{{Time: 0.1}, {Time: 0.2}, {Time: 0.3}}},
		{Layers: []gcode.LayerRecord{{Time: 12345.6789}, {}, {Time: 1e-7}}},
		{Layers: make([]gcode.LayerRecord, 7)},
	}

	m := NewModel(DefaultLayerChange)
	for i, r := range results {
		total := m.TotalTime(r)
		if want := m.LayerChangeTime(r) + m.LaserTime(r); total != want {
			t.Errorf("case %d: TotalTime() = %v, want %v", i, total, want)
		}
		b := m.Estimate(r)
		if b.Total != b.LayerChange+b.Laser {
			t.Errorf("case %d: Breakdown.Total = %v, want %v", i, b.Total, b.LayerChange+b.Laser)
		}
		if b.Total != total {
			t.Errorf("case %d: Breakdown.Total = %v, TotalTime() = %v", i, b.Total, total)
		}
	}
}

func TestModel_Estimate(t *testing.T) {
	est := 90 * time.Second
	r := &gcode.Result{
		SlicerEstimate: &est,
		Layers:         []gcode.LayerRecord{{Distance: 10, Time: 1}, {Distance: 20, Time: 2}},
	}

	b := NewModel(DefaultLayerChange).Estimate(r)
	if b.Layers != 2 {
		t.Errorf("Layers = %d, want 2", b.Layers)
	}
	if b.Distance != 30 {
		t.Errorf("Distance = %v, want 30", b.Distance)
	}
	if b.Laser != 3*time.Second {
		t.Errorf("Laser = %v, want 3s", b.Laser)
	}
	if b.LayerChange != 19*time.Second {
		t.Errorf("LayerChange = %v, want 19s", b.LayerChange)
	}
	if b.Total != 22*time.Second {
		t.Errorf("Total = %v, want 22s", b.Total)
	}
	if b.SlicerEstimate == nil || *b.SlicerEstimate != est {
		t.Errorf("SlicerEstimate = %v, want %v", b.SlicerEstimate, est)
	}

	// The breakdown holds its own copy of the slicer estimate.
	est = time.Hour
	if *b.SlicerEstimate != 90*time.Second {
		t.Errorf("SlicerEstimate changed with the result to %v", *b.SlicerEstimate)
	}
}

func TestBreakdown_Divergence(t *testing.T) {
	slicer := 50 * time.Second
	tests := []struct {
		name   string
		b      Breakdown
		want   float64
		wantOK bool
	}{
		{"no slicer estimate", Breakdown{Total: 100 * time.Second}, 0, false},
		{"zero total", Breakdown{SlicerEstimate: &slicer}, 0, false},
		{"half", Breakdown{SlicerEstimate: &slicer, Total: 100 * time.Second}, 0.5, true},
		{"over", Breakdown{SlicerEstimate: &slicer, Total: 25 * time.Second}, 1, true},
		{"exact", Breakdown{SlicerEstimate: &slicer, Total: 50 * time.Second}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.b.Divergence()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Divergence() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

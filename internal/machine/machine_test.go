package machine

import (
	"context"
	"testing"

	"github.com/san-kum/beamsim/internal/beam"
	"github.com/san-kum/beamsim/internal/physics"
)

func TestRunRecordsSeries(t *testing.T) {
	ring := beam.NewRing(100, 42)
	ring.SetEnergy(50)
	ring.Inject(physics.Proton, 20)

	sim := New(ring)
	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Times))
	}
	if len(result.Energies) != 11 || len(result.MeanPos) != 11 || len(result.Spread) != 11 {
		t.Error("series lengths should match times")
	}
	for _, e := range result.Energies {
		if e != 50 {
			t.Fatalf("energy series should hold at 50, got %g", e)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	sim := New(beam.NewRing(100, 1))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sim.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type countMetric struct {
	n int
}

func (c *countMetric) Name() string                   { return "ticks" }
func (c *countMetric) Observe(r *beam.Ring, t float64) { c.n++ }
func (c *countMetric) Value() float64                 { return float64(c.n) }
func (c *countMetric) Reset()                         { c.n = 0 }

func TestRunMetrics(t *testing.T) {
	ring := beam.NewRing(100, 5)
	ring.Inject(physics.Proton, 5)

	sim := New(ring)
	m := &countMetric{}
	sim.AddMetric(m)

	result, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["ticks"] != 10 {
		t.Errorf("expected 10 observations, got %g", result.Metrics["ticks"])
	}
}

func TestRunCanceled(t *testing.T) {
	ring := beam.NewRing(100, 5)
	sim := New(ring)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, Config{Dt: 0.001, Duration: 100})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

// Package machine orchestrates recorded simulation runs over a beam ring.
package machine

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/beamsim/internal/beam"
)

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(r *beam.Ring, t float64)
	Value() float64
	Reset()
}

// Observer is notified on every tick.
type Observer interface {
	OnTick(r *beam.Ring, t float64)
}

// Config controls a run.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

// Result records the scalar series of a run.
type Result struct {
	Times    []float64
	Energies []float64
	MeanPos  []float64
	Spread   []float64
	Metrics  map[string]float64
}

// Simulator steps a ring for a fixed duration, recording series and feeding
// metrics and observers. Not safe for concurrent use.
type Simulator struct {
	ring      *beam.Ring
	metrics   []Metric
	observers []Observer
}

func New(ring *beam.Ring) *Simulator {
	return &Simulator{ring: ring}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the ring for duration/dt ticks. The initial state is recorded
// before the first tick, so a run of N steps yields N+1 samples.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		Energies: make([]float64, 0, steps+1),
		MeanPos:  make([]float64, 0, steps+1),
		Spread:   make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	s.record(result, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(s.ring, t)
		}
		for _, o := range s.observers {
			o.OnTick(s.ring, t)
		}

		s.ring.Advance(cfg.Dt)
		t += cfg.Dt
		s.record(result, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *Result, t float64) {
	result.Times = append(result.Times, t)
	result.Energies = append(result.Energies, s.ring.CurrentEnergy)

	pos := s.ring.Positions()
	mean, spread := 0.0, 0.0
	if len(pos) > 0 {
		mean = stat.Mean(pos, nil)
	}
	if len(pos) > 1 {
		spread = stat.StdDev(pos, nil)
	}
	result.MeanPos = append(result.MeanPos, mean)
	result.Spread = append(result.Spread, spread)
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

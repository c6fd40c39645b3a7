package physics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RampSample is one (time, energy) point of an acceleration ramp.
type RampSample struct {
	Time   float64 // seconds from ramp start
	Energy float64 // GeV
}

// GenerateRamp produces exactly steps samples over [0, rampTime] following a
// raised-cosine S-curve from e0 to e1:
//
//	energy(t) = e0 + 0.5*(1 - cos(pi*t/T))*(e1 - e0)
//
// The curve starts and ends with zero slope, which is how real magnets are
// ramped to avoid inductive voltage spikes.
//
// The cosine phase is computed from the sample index, which equals pi*t/T
// for the evenly spaced times and keeps the energies finite when rampTime
// is zero or negative (the time axis just collapses to 0).
func GenerateRamp(e0, e1, rampTime float64, steps int) []RampSample {
	if steps < 2 {
		steps = 2
	}

	times := make([]float64, steps)
	floats.Span(times, 0, rampTime)

	samples := make([]RampSample, steps)
	for i, t := range times {
		s := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(steps-1)))
		samples[i] = RampSample{Time: t, Energy: e0 + s*(e1-e0)}
	}
	return samples
}

// RampCursor walks a generated ramp one sample at a time. It is restartable:
// Reset rewinds to the first sample.
type RampCursor struct {
	samples []RampSample
	next    int
}

// NewRampCursor builds a cursor over a freshly generated ramp.
func NewRampCursor(e0, e1, rampTime float64, steps int) *RampCursor {
	return &RampCursor{samples: GenerateRamp(e0, e1, rampTime, steps)}
}

// Next returns the next sample and true, or a zero sample and false once the
// ramp is exhausted.
func (c *RampCursor) Next() (RampSample, bool) {
	if c.next >= len(c.samples) {
		return RampSample{}, false
	}
	s := c.samples[c.next]
	c.next++
	return s, true
}

// Done reports whether every sample has been consumed.
func (c *RampCursor) Done() bool { return c.next >= len(c.samples) }

// Reset rewinds the cursor to the start of the ramp.
func (c *RampCursor) Reset() { c.next = 0 }

// Len returns the total number of samples in the ramp.
func (c *RampCursor) Len() int { return len(c.samples) }

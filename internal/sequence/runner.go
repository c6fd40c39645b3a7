package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/beamsim/internal/beam"
	"github.com/san-kum/beamsim/internal/physics"
)

// Operation delays, matching the reference machine's control timings.
const (
	delaySettle  = 500 * time.Millisecond
	delayInject  = 1 * time.Second
	delayExtract = 1 * time.Second

	rampSteps       = 20
	rampSampleDelay = 100 * time.Millisecond
	rampTotal       = 2 * time.Second
)

// defaultInjectCount is used when set_beam_type finds an empty ring.
const defaultInjectCount = 100

// Event reports sequencer progress to an observer.
type Event struct {
	StepIndex int // -1 for events outside any step
	Op        Op
	Message   string
}

// Runner consumes a sequence against a ring one step at a time. It never
// sleeps itself: Advance performs the next pending action and returns the
// delay the caller should wait before calling it again, so a timer loop, a
// TUI tick, or a test can all drive it.
type Runner struct {
	ring  *beam.Ring
	steps []Step
	next  int

	// A live ramp suspends step consumption until its samples run out.
	ramp       *physics.RampCursor
	rampTarget float64

	// OnEvent, when set, receives progress reports.
	OnEvent func(Event)
}

// NewRunner prepares a runner over the given ring and steps.
func NewRunner(ring *beam.Ring, steps []Step) *Runner {
	return &Runner{ring: ring, steps: steps}
}

// Done reports whether the sequence is fully consumed.
func (r *Runner) Done() bool {
	return r.ramp == nil && r.next >= len(r.steps)
}

// Advance executes the next pending action: one ramp sample when a ramp is
// live, otherwise the next sequence step. It returns the delay before the
// following action and done=true once the sequence has completed.
func (r *Runner) Advance() (delay time.Duration, done bool) {
	if r.ramp != nil {
		return r.advanceRamp(), false
	}

	if r.next >= len(r.steps) {
		r.report(-1, "", "sequence complete")
		return 0, true
	}

	step := r.steps[r.next]
	idx := r.next
	r.next++

	switch step.Op {
	case OpSetEnergy:
		r.ring.SetEnergy(float64(step.Value))
		r.report(idx, step.Op, fmt.Sprintf("energy set to %.1f GeV", r.ring.CurrentEnergy))
		return delaySettle, false

	case OpSetBeamType:
		// Go's % keeps the dividend's sign; fold negatives onto [0, n).
		n := len(physics.AllSpecies)
		species := physics.AllSpecies[((step.Value%n)+n)%n]
		count := r.ring.Count()
		if count == 0 {
			count = defaultInjectCount
		}
		r.ring.Extract()
		n = r.ring.Inject(species, count)
		r.report(idx, step.Op, fmt.Sprintf("beam type set to %s (%d particles re-injected)", species, n))
		return delaySettle, false

	case OpInjectBeam:
		n := r.ring.Inject(physics.Proton, step.Value)
		r.report(idx, step.Op, fmt.Sprintf("injected %d Proton particles", n))
		return delayInject, false

	case OpRampEnergy:
		target := float64(step.Value)
		r.ramp = physics.NewRampCursor(r.ring.CurrentEnergy, target, rampTotal.Seconds(), rampSteps)
		r.rampTarget = target
		r.report(idx, step.Op, fmt.Sprintf("ramping energy from %.1f to %.1f GeV",
			r.ring.CurrentEnergy, target))
		// The ramp drives its own cadence; the next step is scheduled only
		// once the samples are exhausted.
		return r.advanceRamp(), false

	case OpWait:
		r.report(idx, step.Op, fmt.Sprintf("waiting %d ms", step.Value))
		return time.Duration(step.Value) * time.Millisecond, false

	case OpExtractBeam:
		n := r.ring.Extract()
		if n > 0 {
			r.report(idx, step.Op, fmt.Sprintf("extracted %d particles", n))
		} else {
			r.report(idx, step.Op, "no particles to extract")
		}
		return delayExtract, false

	default:
		// Unknown operations are reported and skipped; the sequence goes on.
		r.report(idx, step.Op, fmt.Sprintf("unknown operation %q, skipping", step.Op))
		return delaySettle, false
	}
}

// advanceRamp applies the next ramp sample, or finishes the ramp by pinning
// the exact target energy.
func (r *Runner) advanceRamp() time.Duration {
	sample, ok := r.ramp.Next()
	if !ok {
		r.ring.SetEnergy(r.rampTarget)
		r.report(-1, OpRampEnergy, fmt.Sprintf("energy ramp complete: %.1f GeV", r.rampTarget))
		r.ramp = nil
		return delaySettle
	}

	r.ring.SetEnergy(sample.Energy)
	return rampSampleDelay
}

// Run drives the sequence with a real single-shot re-arming timer until it
// completes or the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		delay, done := r.Advance()
		if done {
			return nil
		}
		timer.Reset(delay)
	}
}

func (r *Runner) report(idx int, op Op, msg string) {
	if r.OnEvent != nil {
		r.OnEvent(Event{StepIndex: idx, Op: op, Message: msg})
	}
}

// Package cloud implements the per-frame scatter integrator behind the
// cloud visualization: independent 2-D particles receiving Gaussian velocity
// kicks, reflecting walls, and an approximate magnetic-region rotation.
// The cloud is advanced only by an external tick and has no feedback from
// rendering.
package cloud

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultBound is the half-width of the square reflecting box.
	DefaultBound = 10.0

	// DefaultNoise is the base std-dev of the per-tick velocity kick.
	DefaultNoise = 0.01
)

// Magnet is a fixed circular field region. Direction is +1 or -1; particles
// inside have their velocity rotated each tick.
type Magnet struct {
	X, Y     float64
	Radius   float64
	Strength float64
	Dir      float64
}

// Cloud holds a fixed-size set of independent particles. Particle counts are
// small (~100-5000), so the update is a plain serial loop.
type Cloud struct {
	X, Y   []float64
	VX, VY []float64

	Energy float64 // GeV, drives the kick amplitude and magnet damping
	Charge float64 // beam charge sign, units of e
	Bound  float64
	Noise  float64

	Magnets []Magnet
	Trails  *Recorder

	Frame int
	rng   *rand.Rand
}

// New creates a cloud of n particles with positions drawn from N(0, 1) and
// zero velocities.
func New(n int, seed int64) *Cloud {
	c := &Cloud{
		X:      make([]float64, n),
		Y:      make([]float64, n),
		VX:     make([]float64, n),
		VY:     make([]float64, n),
		Energy: 100,
		Charge: 1,
		Bound:  DefaultBound,
		Noise:  DefaultNoise,
		rng:    rand.New(rand.NewSource(seed)),
	}
	for i := 0; i < n; i++ {
		c.X[i] = c.rng.NormFloat64()
		c.Y[i] = c.rng.NormFloat64()
	}
	return c
}

// Len returns the particle count.
func (c *Cloud) Len() int { return len(c.X) }

// Resize changes the particle count: new particles get N(0, 1) positions and
// zero velocities, surplus particles are truncated.
func (c *Cloud) Resize(n int) {
	old := len(c.X)
	if n <= old {
		c.X = c.X[:n]
		c.Y = c.Y[:n]
		c.VX = c.VX[:n]
		c.VY = c.VY[:n]
		return
	}
	for i := old; i < n; i++ {
		c.X = append(c.X, c.rng.NormFloat64())
		c.Y = append(c.Y, c.rng.NormFloat64())
		c.VX = append(c.VX, 0)
		c.VY = append(c.VY, 0)
	}
}

// Step advances every particle by one frame: a Gaussian velocity kick scaled
// by the acceleration factor, position integration, wall reflection, and the
// magnet rotation. A particle crossing a wall has the matching velocity
// component sign-flipped on the same tick.
func (c *Cloud) Step() {
	accel := c.Energy / 100.0
	sigma := c.Noise * accel

	for i := range c.X {
		c.VX[i] += c.rng.NormFloat64() * sigma
		c.VY[i] += c.rng.NormFloat64() * sigma

		c.X[i] += c.VX[i]
		c.Y[i] += c.VY[i]

		if math.Abs(c.X[i]) > c.Bound {
			c.VX[i] = -c.VX[i]
		}
		if math.Abs(c.Y[i]) > c.Bound {
			c.VY[i] = -c.VY[i]
		}

		c.applyMagnets(i)
	}

	c.Frame++
	if c.Trails != nil {
		c.Trails.Record(c)
	}
}

// applyMagnets rotates the velocity of particle i inside any field region.
// The rotation angle scales with field strength, direction, and charge sign,
// and is damped inversely with energy as a crude stand-in for relativistic
// stiffness. This approximates Lorentz-force circular motion without real
// force integration; it is intentionally inexact.
func (c *Cloud) applyMagnets(i int) {
	if len(c.Magnets) == 0 {
		return
	}

	stiffness := c.Energy / 100.0
	if stiffness < 1 {
		stiffness = 1
	}
	sign := 1.0
	if c.Charge < 0 {
		sign = -1.0
	}

	for _, m := range c.Magnets {
		dx := c.X[i] - m.X
		dy := c.Y[i] - m.Y
		if dx*dx+dy*dy > m.Radius*m.Radius {
			continue
		}

		theta := m.Strength * m.Dir * sign / stiffness
		cos, sin := math.Cos(theta), math.Sin(theta)
		vx, vy := c.VX[i], c.VY[i]
		c.VX[i] = vx*cos - vy*sin
		c.VY[i] = vx*sin + vy*cos
	}
}

// MeanX returns the mean x position of the cloud.
func (c *Cloud) MeanX() float64 {
	if len(c.X) == 0 {
		return 0
	}
	return stat.Mean(c.X, nil)
}

// SpreadX returns the standard deviation of x positions.
func (c *Cloud) SpreadX() float64 {
	if len(c.X) < 2 {
		return 0
	}
	return stat.StdDev(c.X, nil)
}

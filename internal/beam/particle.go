package beam

import (
	"github.com/san-kum/beamsim/internal/physics"
)

// Particle is one circulating particle. Position is the fractional location
// along the ring in [0, 1); velocity is the display-scaled fraction of the
// ring traversed per second.
type Particle struct {
	Species  physics.Species
	Energy   float64 // GeV
	Position float64
	Velocity float64

	// Derived from the species table at creation.
	Mass   float64 // GeV/c^2
	Charge float64 // units of e
	Color  physics.RGB
}

// NewParticle creates a particle of the given species at an initial ring
// position. Unknown species resolve to proton properties.
func NewParticle(s physics.Species, energy, position float64) Particle {
	props := physics.Lookup(s)
	return Particle{
		Species:  s,
		Energy:   energy,
		Position: position,
		Mass:     props.MassGeV,
		Charge:   props.Charge,
		Color:    props.Color,
	}
}

// speed maps the particle's relativistic beta onto a display velocity.
// Real velocities would all sit indistinguishably close to c, so the range
// is compressed to [0.1, 1.0) to keep slow beams visibly moving.
func (p *Particle) speed() float64 {
	if p.Energy <= 0 {
		return 0
	}
	b := physics.Beta(p.Energy, p.Mass)
	if b == 0 {
		return 0
	}
	return 0.1 + 0.9*b
}

// Advance moves the particle along the ring over dt seconds.
func (p *Particle) Advance(dt float64) {
	p.Velocity = p.speed()
	p.Position += p.Velocity * dt
	p.Position -= float64(int(p.Position)) // wrap to [0, 1)
	if p.Position < 0 {
		p.Position += 1
	}
}

package beam

import (
	"math/rand"

	"github.com/san-kum/beamsim/internal/physics"
)

// Section is a named, display-only marker along the ring.
type Section struct {
	Name     string
	Position float64
}

// DefaultSections mirrors the layout of the reference machine.
var DefaultSections = []Section{
	{Name: "Injection", Position: 0.0},
	{Name: "RF Cavity 1", Position: 0.25},
	{Name: "RF Cavity 2", Position: 0.5},
	{Name: "RF Cavity 3", Position: 0.75},
	{Name: "Extraction", Position: 0.99},
}

// Ring holds the accelerator state: the circulating particles and the
// current machine energy. All mutation happens on the caller's tick; Ring
// itself is not safe for concurrent use.
type Ring struct {
	Sections      []Section
	Particles     []Particle
	CurrentEnergy float64 // GeV
	MaxEnergy     float64 // GeV

	rng *rand.Rand
}

// NewRing creates an empty ring with the given energy cap. A non-zero seed
// makes injection positions reproducible.
func NewRing(maxEnergy float64, seed int64) *Ring {
	return &Ring{
		Sections:  DefaultSections,
		MaxEnergy: maxEnergy,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Inject replaces the beam with count fresh particles of the given species
// at the ring's current energy, bunched near the injection point. Returns
// the number of particles injected.
func (r *Ring) Inject(s physics.Species, count int) int {
	r.Particles = make([]Particle, 0, count)

	for i := 0; i < count; i++ {
		pos := r.rng.NormFloat64()*0.01 + 0.01
		pos -= float64(int(pos))
		if pos < 0 {
			pos += 1
		}
		r.Particles = append(r.Particles, NewParticle(s, r.CurrentEnergy, pos))
	}

	return len(r.Particles)
}

// Extract removes the beam and returns how many particles were dumped.
func (r *Ring) Extract() int {
	n := len(r.Particles)
	r.Particles = nil
	return n
}

// SetEnergy sets the machine energy, clamped to MaxEnergy, and propagates it
// to every circulating particle.
func (r *Ring) SetEnergy(energy float64) {
	if energy > r.MaxEnergy {
		energy = r.MaxEnergy
	}
	r.CurrentEnergy = energy

	for i := range r.Particles {
		r.Particles[i].Energy = energy
	}
}

// Advance steps every particle along the ring by dt seconds.
func (r *Ring) Advance(dt float64) {
	for i := range r.Particles {
		r.Particles[i].Advance(dt)
	}
}

// Count returns the number of circulating particles.
func (r *Ring) Count() int { return len(r.Particles) }

// Positions returns the current ring positions of all particles.
func (r *Ring) Positions() []float64 {
	out := make([]float64, len(r.Particles))
	for i := range r.Particles {
		out[i] = r.Particles[i].Position
	}
	return out
}

// Energies returns the current energies of all particles.
func (r *Ring) Energies() []float64 {
	out := make([]float64, len(r.Particles))
	for i := range r.Particles {
		out[i] = r.Particles[i].Energy
	}
	return out
}

// Species returns the species of the beam, or Proton for an empty ring.
func (r *Ring) BeamSpecies() physics.Species {
	if len(r.Particles) == 0 {
		return physics.Proton
	}
	return r.Particles[0].Species
}

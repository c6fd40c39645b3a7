// Package physics provides the accelerator physics primitives.
//
// All functions are pure and deterministic:
//
//   - [Beta], [Momentum], [LorentzFactor]: relativistic kinematics
//   - [FieldForRadius]: dipole field needed for a given bending radius
//   - [RFFrequencyMHz]: RF frequency for a stable orbit
//   - [SynchrotronPowerKW]: radiated power of a bent beam
//   - [GenerateRamp]: raised-cosine energy ramp sampling
//
// Energies are in GeV, masses in GeV/c^2, momenta in GeV/c, lengths in
// meters. The [Lookup] table carries the per-species constants; an unknown
// species silently resolves to proton defaults.
package physics

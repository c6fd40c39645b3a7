package physics

import "math"

// Physical constants used by the unit conversions below.
const (
	// SpeedOfLight in m/s.
	SpeedOfLight = 299792458.0

	// ElementaryCharge in Coulombs.
	ElementaryCharge = 1.602176634e-19

	// GeVPerCKgMS converts momentum from GeV/c to SI (kg·m/s).
	GeVPerCKgMS = 5.344286e-19

	electronMassGeV = 0.000511
	protonMassGeV   = 0.938
)

// Beta returns the relativistic velocity ratio v/c for a particle with the
// given kinetic energy and rest mass, both in GeV. The result is clamped to 0
// when gamma <= 1 or when floating point rounding would make beta^2 negative.
func Beta(energyGeV, restMassGeV float64) float64 {
	total := energyGeV + restMassGeV
	gamma := total / restMassGeV

	if gamma <= 1.0 {
		return 0.0
	}

	betaSq := 1.0 - 1.0/(gamma*gamma)
	if betaSq < 0 {
		return 0.0
	}

	return math.Sqrt(betaSq)
}

// Momentum returns the momentum in GeV/c from kinetic energy and rest mass.
func Momentum(energyGeV, restMassGeV float64) float64 {
	total := energyGeV + restMassGeV
	return math.Sqrt(total*total - restMassGeV*restMassGeV)
}

// LorentzFactor returns gamma from beta. Returns +Inf at beta >= 1.
func LorentzFactor(beta float64) float64 {
	if beta >= 1.0 {
		return math.Inf(1)
	}
	return 1.0 / math.Sqrt(1.0-beta*beta)
}

// FieldForRadius returns the magnetic field in Tesla needed to bend a
// particle of the given momentum (GeV/c) and charge (units of e) on a
// circle of the given radius.
func FieldForRadius(momentumGeV, radiusM, charge float64) float64 {
	momentumSI := momentumGeV * GeVPerCKgMS
	return momentumSI / (charge * ElementaryCharge * radiusM)
}

// RFFrequencyMHz returns the RF frequency in MHz for a stable orbit:
// harmonic number times the revolution frequency beta*c/(2*pi*r).
func RFFrequencyMHz(beta, radiusM float64, harmonic int) float64 {
	circumference := 2 * math.Pi * radiusM
	revFreq := beta * SpeedOfLight / circumference
	return float64(harmonic) * revFreq / 1e6
}

// SynchrotronPowerKW returns the synchrotron radiation power in kilowatts
// for a beam of the given energy (GeV), bending field (T), current (A) and
// bending radius (m). The proton-energy beam is scaled to electron units
// since radiated power goes as m^-4:
//
//	P[kW] = 88.5 * E^4[GeV] * I[A] * B[T] / rho[m]
func SynchrotronPowerKW(energyGeV, fieldT, currentA, radiusM float64) float64 {
	massRatio := electronMassGeV / protonMassGeV
	scaled := energyGeV * massRatio
	return 88.5 * math.Pow(scaled, 4) * currentA * fieldT / radiusM
}

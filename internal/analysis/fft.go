// Package analysis provides spectral tools for recorded beam series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real series via the
// recursive radix-2 split. Input length must be a power of two; use Pad
// for arbitrary series.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// Pad extends data with zeros up to the next power of two. Already
// power-of-two inputs are returned as a copy.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// Detrend subtracts the mean so the DC bin does not dominate the spectrum.
func Detrend(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

// PowerSpectrum returns the one-sided magnitude spectrum of an arbitrary
// real series. The series is detrended and zero-padded first.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	fft := FFT(Pad(Detrend(data)))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the peak bin of the spectrum as a frequency in
// cycles per sample interval, given the sampling step dt. The DC bin is
// ignored. Returns 0 for series too short to resolve a peak.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	n := len(ps) * 2
	return float64(peak) / (float64(n) * dt)
}

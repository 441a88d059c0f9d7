package spectrum

import "math"

// binHz maps bin i of an n-point transform to its frequency.
func binHz(i, n int, sampleRate float64) float64 {
	return float64(i) * sampleRate / float64(n)
}

// halfSpectrum reports whether magnitude holds the n/2+1 bins of an n-point
// real transform with at least two bins.
func halfSpectrum(magnitude []float64, n int) bool {
	return n >= 2 && len(magnitude) == n/2+1
}

// Centroid returns the magnitude-weighted mean frequency in Hz of the half
// spectrum of an n-point transform. n is needed because odd and even sizes
// share a bin count. It is 0 when len(magnitude) is not n/2+1, for n < 2 and
// for an all-zero spectrum.
func Centroid(magnitude []float64, n int, sampleRate float64) float64 {
	if !halfSpectrum(magnitude, n) {
		return 0
	}
	sum, weighted := 0.0, 0.0
	for i, v := range magnitude {
		sum += v
		weighted += binHz(i, n, sampleRate) * v
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

// Flatness returns the ratio of geometric to arithmetic mean magnitude,
// excluding DC. White noise approaches 1 and a pure tone approaches 0.
func Flatness(magnitude []float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	bins := magnitude[1:]
	sumLin, sumLog := 0.0, 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(bins))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency below which fraction (0..1) of the spectral
// energy of an n-point transform's half spectrum lies. Like [Centroid] it is 0
// when the bin count does not match n.
func Rolloff(magnitude []float64, n int, sampleRate, fraction float64) float64 {
	if !halfSpectrum(magnitude, n) {
		return 0
	}
	total := 0.0
	for _, v := range magnitude {
		total += v * v
	}
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	acc := 0.0
	for i, v := range magnitude {
		acc += v * v
		if acc >= threshold {
			return binHz(i, n, sampleRate)
		}
	}
	return binHz(len(magnitude)-1, n, sampleRate)
}

// Peak returns the index and value of the largest magnitude, or -1 for an
// empty slice.
func Peak(magnitude []float64) (int, float64) {
	idx, best := -1, math.Inf(-1)
	for i, v := range magnitude {
		if v > best {
			idx, best = i, v
		}
	}
	return idx, best
}

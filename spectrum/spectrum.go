package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// FloorDB is the lowest level MagnitudeDB and PowerDB report.
const FloorDB = -300.0

var (
	// ErrInvalidSize is returned for a non-positive transform length.
	ErrInvalidSize = errors.New("spectrum: transform length must be positive")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive")
)

// scratchBuf holds pooled memory for splitting complex bins into parts.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Of widens transform coefficients of either precision into a new
// []complex128, typically Of(pair.Coef()).
func Of[C algofft.Complex](coef []C) []complex128 {
	out := make([]complex128, len(coef))
	for i, c := range coef {
		out[i] = complex128(c)
	}
	return out
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)
	return out
}

func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// MagnitudeDB returns 20*log10(|X[k]|), floored at FloorDB.
func MagnitudeDB(in []complex128) []float64 {
	out := Power(in)
	for i, p := range out {
		out[i] = powerToDB(p)
	}
	return out
}

// PowerDB returns 10*log10(p) for each value, floored at FloorDB.
func PowerDB(power []float64) []float64 {
	if len(power) == 0 {
		return nil
	}
	out := make([]float64, len(power))
	for i, p := range power {
		out[i] = powerToDB(p)
	}
	return out
}

func powerToDB(p float64) float64 {
	if !(p > 0) {
		return FloorDB
	}
	return max(10*log10(p), FloorDB)
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// BinFrequency returns the centre frequency in Hz of bin k of a length-n
// transform sampled at sampleRate.
func BinFrequency(k, n int, sampleRate float64) (float64, error) {
	if n <= 0 {
		return 0, ErrInvalidSize
	}
	if !(sampleRate > 0) {
		return 0, ErrInvalidSampleRate
	}
	return float64(k) * sampleRate / float64(n), nil
}

// BinFrequencies returns the frequency of every bin of the half spectrum of a
// length-n real transform.
func BinFrequencies(n int, sampleRate float64) ([]float64, error) {
	if _, err := BinFrequency(0, n, sampleRate); err != nil {
		return nil, err
	}
	out := make([]float64, n/2+1)
	step := sampleRate / float64(n)
	for k := range out {
		out[k] = float64(k) * step
	}
	return out, nil
}

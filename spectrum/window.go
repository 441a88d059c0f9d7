package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Window identifies a tapering function applied to a frame before the
// forward transform.
type Window int

const (
	Rectangular Window = iota
	Hann
	Hamming
	Blackman
	BlackmanHarris
	FlatTop
)

var errUnknownWindow = errors.New("spectrum: unknown window")

// Generalised cosine terms, w(x) = sum c_k cos(2*pi*k*x).
var cosineTerms = map[Window][]float64{
	Rectangular:    {1},
	Hann:           {0.5, -0.5},
	Hamming:        {0.54, -0.46},
	Blackman:       {0.42, -0.5, 0.08},
	BlackmanHarris: {0.35875, -0.48829, 0.14128, -0.01168},
	FlatTop:        {0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368},
}

var windowNames = map[Window]string{
	Rectangular:    "rectangular",
	Hann:           "hann",
	Hamming:        "hamming",
	Blackman:       "blackman",
	BlackmanHarris: "blackman-harris",
	FlatTop:        "flat-top",
}

func (w Window) String() string {
	if s, ok := windowNames[w]; ok {
		return s
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// Coefficients returns the periodic form of w with n points, the form that
// tiles without a discontinuity when framed for a length-n transform.
func (w Window) Coefficients(n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	terms, ok := cosineTerms[w]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnknownWindow, int(w))
	}

	out := make([]float64, n)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / float64(n)
		sum := 0.0
		for k, c := range terms {
			sum += c * math.Cos(float64(k)*phase)
		}
		out[i] = sum
	}
	return out, nil
}

// CoherentGain returns sum(w)/len(w), the amplitude a windowed sinusoid
// loses on its centre bin.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}

// ENBW returns the equivalent noise bandwidth of a window in bins.
func ENBW(coeffs []float64) float64 {
	sum, sq := 0.0, 0.0
	for _, c := range coeffs {
		sum += c
		sq += c * c
	}
	if sum == 0 {
		return 0
	}
	return float64(len(coeffs)) * sq / (sum * sum)
}

// ApplyWindow multiplies frame in place by coeffs.
func ApplyWindow(frame, coeffs []float64) error {
	if len(frame) != len(coeffs) {
		return fmt.Errorf("spectrum: window length %d, frame length %d", len(coeffs), len(frame))
	}
	vecmath.MulBlockInPlace(frame, coeffs)
	return nil
}

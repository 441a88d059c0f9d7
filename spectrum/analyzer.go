package spectrum

import (
	"errors"
	"fmt"

	fftw "github.com/cwbudde/algo-fftw"
)

// ErrFrameLength is returned when a frame does not match the analyzer size.
var ErrFrameLength = errors.New("spectrum: frame length does not match analyzer size")

// Analyzer computes single-sided amplitude spectra of fixed-length real
// frames. It owns one double-precision transform pair and is not safe for
// concurrent use.
type Analyzer struct {
	pair       *fftw.Pair64
	coeffs     []float64
	scale      float64
	sampleRate float64
}

// NewAnalyzer builds an analyzer for frames of n samples taken at
// sampleRate, tapered by w. opts are passed to the pair builder.
func NewAnalyzer(n int, sampleRate float64, w Window, opts ...fftw.Option) (*Analyzer, error) {
	if !(sampleRate > 0) {
		return nil, ErrInvalidSampleRate
	}
	coeffs, err := w.Coefficients(n)
	if err != nil {
		return nil, err
	}
	pair, err := fftw.NewR2C1D(n).WithFlags(fftw.Estimate).ToPair64(opts...)
	if err != nil {
		return nil, fmt.Errorf("spectrum: analyzer: %w", err)
	}
	return &Analyzer{
		pair:       pair,
		coeffs:     coeffs,
		scale:      1 / (CoherentGain(coeffs) * float64(n)),
		sampleRate: sampleRate,
	}, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.pair.LogicalSize() }

// Frequencies returns the centre frequency of each output bin.
func (a *Analyzer) Frequencies() []float64 {
	f, _ := BinFrequencies(a.Size(), a.sampleRate)
	return f
}

// Analyze windows a copy of frame and returns the amplitude of each of the
// n/2+1 bins. A sinusoid of amplitude A centred on a bin reads A there.
func (a *Analyzer) Analyze(frame []float64) ([]float64, error) {
	n := a.Size()
	if len(frame) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(frame), n)
	}

	field := a.pair.Field()
	copy(field, frame)
	if err := ApplyWindow(field, a.coeffs); err != nil {
		return nil, err
	}
	a.pair.Forward()

	out := Magnitude(a.pair.Coef())
	for k := range out {
		s := a.scale
		if k != 0 && !(n%2 == 0 && k == n/2) {
			s *= 2
		}
		out[k] *= s
	}
	return out, nil
}

// Close releases the transform pair.
func (a *Analyzer) Close() error { return a.pair.Close() }

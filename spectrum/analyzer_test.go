package spectrum

import (
	"errors"
	"math"
	"testing"
)

func sine(n int, amp, bin float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*bin*float64(i)/float64(n))
	}
	return out
}

func TestAnalyzerAmplitude(t *testing.T) {
	const n = 64
	for _, w := range []Window{Rectangular, Hann, Blackman, FlatTop} {
		t.Run(w.String(), func(t *testing.T) {
			a, err := NewAnalyzer(n, 6400, w)
			if err != nil {
				t.Fatal(err)
			}
			defer a.Close()

			frame := sine(n, 0.5, 8)
			for i := range frame {
				frame[i] += 0.25
			}
			amp, err := a.Analyze(frame)
			if err != nil {
				t.Fatal(err)
			}
			if len(amp) != n/2+1 {
				t.Fatalf("len = %d", len(amp))
			}
			if math.Abs(amp[8]-0.5) > 1e-9 {
				t.Fatalf("amp[8] = %g, want 0.5", amp[8])
			}
			if math.Abs(amp[0]-0.25) > 1e-9 {
				t.Fatalf("amp[0] = %g, want 0.25", amp[0])
			}
			if f := a.Frequencies(); f[8] != 800 {
				t.Fatalf("Frequencies()[8] = %g", f[8])
			}
		})
	}
}

func TestAnalyzerFlatTopBetweenBins(t *testing.T) {
	const n = 256
	a, err := NewAnalyzer(n, 48000, FlatTop)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	amp, err := a.Analyze(sine(n, 1, 20.5))
	if err != nil {
		t.Fatal(err)
	}
	_, peak := Peak(amp)
	if math.Abs(peak-1) > 0.01 {
		t.Fatalf("flat-top peak = %g, want ~1", peak)
	}
}

func TestAnalyzerLeavesFrameUntouched(t *testing.T) {
	a, err := NewAnalyzer(16, 1000, Hann)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	frame := sine(16, 1, 2)
	orig := append([]float64(nil), frame...)
	if _, err := a.Analyze(frame); err != nil {
		t.Fatal(err)
	}
	for i := range frame {
		if frame[i] != orig[i] {
			t.Fatalf("frame[%d] modified", i)
		}
	}
}

func TestAnalyzerErrors(t *testing.T) {
	if _, err := NewAnalyzer(16, 0, Hann); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero sample rate err = %v", err)
	}
	if _, err := NewAnalyzer(0, 1000, Hann); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("zero size err = %v", err)
	}

	a, err := NewAnalyzer(16, 1000, Hann)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if _, err := a.Analyze(make([]float64, 15)); !errors.Is(err, ErrFrameLength) {
		t.Fatalf("short frame err = %v", err)
	}
}

package gobackend

import (
	"math"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fftw/plan"
)

// repetitions returns how many timed runs each candidate gets.
func repetitions(s plan.Strategy) int {
	switch s {
	case plan.StrategyMeasure:
		return 3
	case plan.StrategyPatient:
		return 8
	case plan.StrategyExhaustive:
		return 16
	default:
		return 0
	}
}

// complexCandidates lists complex line kernels for n, preferred first.
func complexCandidates[C algofft.Complex](n int) []line[C] {
	var out []line[C]
	if l, err := newAlgofftLine[C](n); err == nil {
		out = append(out, l)
	}
	return append(out, newGonumLine[C](n))
}

// realCandidates lists real line kernels for n, preferred first.
func realCandidates[F algofft.Float, C algofft.Complex](n int) []realLine[F, C] {
	var out []realLine[F, C]
	if l, err := newAlgofftLine[C](n); err == nil {
		out = append(out, newComplexRealLine[F, C](l, n))
	}
	return append(out, newGonumRealLine[F, C](n))
}

func chooseComplexLine[C algofft.Complex](n int, s plan.Strategy) line[C] {
	src := make([]C, n)
	for i := range src {
		src[i] = C(complex(trialSignal(i), trialSignal(i+1)))
	}
	dst := make([]C, n)

	return fastest(complexCandidates[C](n), s, func(l line[C]) {
		l.forward(dst, src)
		l.inverse(dst, src)
	})
}

func chooseRealLine[F algofft.Float, C algofft.Complex](n int, s plan.Strategy) realLine[F, C] {
	src := make([]F, n)
	for i := range src {
		src[i] = F(trialSignal(i))
	}
	spec := make([]C, n/2+1)
	out := make([]F, n)

	return fastest(realCandidates[F, C](n), s, func(l realLine[F, C]) {
		l.forward(spec, src)
		l.inverse(out, spec)
	})
}

// fastest returns the first candidate for Estimate, otherwise the candidate
// with the lowest best-of-N run time.
func fastest[K kernel](cands []K, s plan.Strategy, run func(K)) K {
	reps := repetitions(s)
	if reps == 0 || len(cands) == 1 {
		return cands[0]
	}

	best := cands[0]
	bestDur := time.Duration(math.MaxInt64)
	for _, c := range cands {
		run(c)

		shortest := time.Duration(math.MaxInt64)
		for range reps {
			start := time.Now()
			run(c)
			if d := time.Since(start); d < shortest {
				shortest = d
			}
		}
		if shortest < bestDur {
			best, bestDur = c, shortest
		}
	}
	return best
}

// trialSignal is a deterministic, non-trivial test signal.
func trialSignal(i int) float64 {
	return math.Sin(0.37*float64(i)) + 0.25*math.Cos(1.3*float64(i))
}

package testutil

import (
	"math"
	"math/cmplx"
)

// NaiveDFT computes the O(n^2) DFT of x. sign is -1 for the forward
// transform and +1 for the unnormalized backward transform.
func NaiveDFT(x []complex128, sign float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for j, v := range x {
			angle := sign * 2 * math.Pi * float64(j*k%n) / float64(n)
			sum += v * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

// NaiveRealDFT computes the half spectrum of a row-major real array of the
// given shape by direct summation. The last dimension d contributes d/2+1
// bins.
func NaiveRealDFT(x []float64, shape []int) []complex128 {
	full := make([]complex128, len(x))
	for i, v := range x {
		full[i] = complex(v, 0)
	}

	stride := 1
	for a := len(shape) - 1; a >= 0; a-- {
		m := shape[a]
		block := m * stride
		line := make([]complex128, m)
		for base := 0; base < len(full); base += block {
			for j := 0; j < stride; j++ {
				for i := range m {
					line[i] = full[base+j+i*stride]
				}
				res := NaiveDFT(line, -1)
				for i := range m {
					full[base+j+i*stride] = res[i]
				}
			}
		}
		stride *= m
	}

	last := shape[len(shape)-1]
	h := last/2 + 1
	rows := len(x) / last
	out := make([]complex128, rows*h)
	for r := range rows {
		copy(out[r*h:(r+1)*h], full[r*last:r*last+h])
	}
	return out
}

// Package gobackend is the pure-Go transform backend.
//
// It plans the way FFTW does: for every axis of a request it gathers candidate
// kernels, then either keeps the preferred one (Estimate) or times each
// candidate on scratch memory and binds the fastest (Measure, Patient,
// Exhaustive). Planning never reads or writes the bound buffers.
//
// Candidate kernels:
//
//   - algofft: codelet-based complex FFT from github.com/MeKo-Christian/algo-fft,
//     available for the sizes that library accepts.
//   - gonum: mixed-radix FFTPACK port from gonum.org/v1/gonum/dsp/fourier,
//     available for every size.
//   - gonum-real: gonum's real-input transform, used on the last axis of real
//     transforms.
//
// All kernels are unnormalized: a forward transform followed by a backward
// transform scales the data by the transform length.
//
// The backend registers itself with plan.Global under the name "go".
package gobackend

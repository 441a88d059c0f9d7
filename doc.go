// Package fftw provides real-to-complex and complex-to-real FFT transform
// pairs with aligned buffers and precomputed plans.
//
// A [Pair] owns a field buffer (real samples), a coefficient buffer (the
// non-redundant half spectrum) and two plans bound to those buffers. Plans
// are built once; every call to [Pair.Forward] or [Pair.Backward] reuses them.
//
//	pair, err := fftw.NewR2C1D(1024).ToPair64()
//	if err != nil {
//		return err
//	}
//	defer pair.Close()
//
//	copy(pair.Field(), samples)
//	pair.Forward()
//	spec := pair.Coef() // 513 bins
//
// Transforms are unnormalized: Backward(Forward(x)) equals N·x. Call
// [Pair.Normalize] after Backward to recover x.
//
// Plans come from a [plan.Backend]. The pure-Go backend is always available;
// building with -tags fftw (and cgo) adds a backend that links the native
// FFTW 3 library and takes precedence. [WithBackendName] selects one
// explicitly.
package fftw

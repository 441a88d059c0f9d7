//go:build fftw && cgo

// Package fftwbackend links the native FFTW 3 library (fftw3 and fftw3f) and
// registers it as the preferred plan backend.
//
// The package is compiled only with the fftw build tag and cgo enabled. Header
// and library locations come from CGO_CFLAGS and CGO_LDFLAGS; cmd/fftw-build
// writes suitable values to cgo.env.
//
// FFTW plans keep the buffer addresses they were planned with, so buffers
// must live outside the Go heap. The backend allocator uses fftw_malloc;
// aligned.Mmap is also suitable. Any allocator that does not report OffHeap
// is refused through AcceptsAllocator, and the builder fails with
// fftw.ErrAllocatorRejected.
//
// The FFTW planner is not thread-safe. Plan creation and destruction are
// serialized with a package mutex; execution is not.
package fftwbackend

package fftw

import (
	"fmt"

	"github.com/cwbudde/algo-fftw/plan"
)

// Flag is a planning flag set. See package plan for the values.
type Flag = plan.Flag

// Planning strategies and modifiers, re-exported from package plan.
const (
	Measure        = plan.Measure
	DestroyInput   = plan.DestroyInput
	Unaligned      = plan.Unaligned
	ConserveMemory = plan.ConserveMemory
	Exhaustive     = plan.Exhaustive
	PreserveInput  = plan.PreserveInput
	Patient        = plan.Patient
	Estimate       = plan.Estimate
)

// R2CSettings describes a real transform pair. It is implemented by R2C1D,
// R2C2D and R2C3D.
type R2CSettings interface {
	Shape() []int
	Flags() Flag
}

// R2C1D describes a one-dimensional real transform of length N.
type R2C1D struct {
	n     int
	flags Flag
}

// NewR2C1D returns settings for a length-n transform planned with Measure.
func NewR2C1D(n int) R2C1D {
	return R2C1D{n: n, flags: Measure}
}

// WithFlags returns a copy using flags f.
func (s R2C1D) WithFlags(f Flag) R2C1D {
	s.flags = f
	return s
}

// Shape returns the logical size as a one-element slice.
func (s R2C1D) Shape() []int { return []int{s.n} }

// Flags returns the planning flags.
func (s R2C1D) Flags() Flag { return s.flags }

// String describes the settings, e.g. "R2C1D(1024, measure)".
func (s R2C1D) String() string {
	return fmt.Sprintf("R2C1D(%d, %s)", s.n, s.flags)
}

// ToPair64 builds a float64/complex128 pair.
func (s R2C1D) ToPair64(opts ...Option) (*Pair64, error) {
	return BuildR2C[float64, complex128](s, opts...)
}

// ToPair32 builds a float32/complex64 pair.
func (s R2C1D) ToPair32(opts ...Option) (*Pair32, error) {
	return BuildR2C[float32, complex64](s, opts...)
}

// R2C2D describes a row-major n0 x n1 real transform.
type R2C2D struct {
	n0, n1 int
	flags  Flag
}

// NewR2C2D returns settings for an n0 x n1 transform planned with Measure.
func NewR2C2D(n0, n1 int) R2C2D {
	return R2C2D{n0: n0, n1: n1, flags: Measure}
}

// WithFlags returns a copy using flags f.
func (s R2C2D) WithFlags(f Flag) R2C2D {
	s.flags = f
	return s
}

// Shape returns the logical dimensions {n0, n1}. The spectrum has
// n0*(n1/2+1) bins.
func (s R2C2D) Shape() []int { return []int{s.n0, s.n1} }

// Flags returns the planning flags.
func (s R2C2D) Flags() Flag { return s.flags }

// String describes the settings, e.g. "R2C2D(64x48, measure)".
func (s R2C2D) String() string {
	return fmt.Sprintf("R2C2D(%dx%d, %s)", s.n0, s.n1, s.flags)
}

// ToPair64 builds a float64/complex128 pair.
func (s R2C2D) ToPair64(opts ...Option) (*Pair64, error) {
	return BuildR2C[float64, complex128](s, opts...)
}

// ToPair32 builds a float32/complex64 pair.
func (s R2C2D) ToPair32(opts ...Option) (*Pair32, error) {
	return BuildR2C[float32, complex64](s, opts...)
}

// R2C3D describes a row-major n0 x n1 x n2 real transform.
type R2C3D struct {
	n0, n1, n2 int
	flags      Flag
}

// NewR2C3D returns settings for an n0 x n1 x n2 transform planned with Measure.
func NewR2C3D(n0, n1, n2 int) R2C3D {
	return R2C3D{n0: n0, n1: n1, n2: n2, flags: Measure}
}

// WithFlags returns a copy using flags f.
func (s R2C3D) WithFlags(f Flag) R2C3D {
	s.flags = f
	return s
}

// Shape returns the logical dimensions {n0, n1, n2}. The spectrum has
// n0*n1*(n2/2+1) bins.
func (s R2C3D) Shape() []int { return []int{s.n0, s.n1, s.n2} }

// Flags returns the planning flags.
func (s R2C3D) Flags() Flag { return s.flags }

// String describes the settings, e.g. "R2C3D(8x8x8, estimate)".
func (s R2C3D) String() string {
	return fmt.Sprintf("R2C3D(%dx%dx%d, %s)", s.n0, s.n1, s.n2, s.flags)
}

// ToPair64 builds a float64/complex128 pair.
func (s R2C3D) ToPair64(opts ...Option) (*Pair64, error) {
	return BuildR2C[float64, complex128](s, opts...)
}

// ToPair32 builds a float32/complex64 pair.
func (s R2C3D) ToPair32(opts ...Option) (*Pair32, error) {
	return BuildR2C[float32, complex64](s, opts...)
}

// C2C1D describes a one-dimensional complex transform of length N. Its pair
// uses complex elements on both sides and a full-length spectrum.
type C2C1D struct {
	n     int
	flags Flag
}

// NewC2C1D returns settings for a length-n complex transform planned with
// Measure.
func NewC2C1D(n int) C2C1D {
	return C2C1D{n: n, flags: Measure}
}

// WithFlags returns a copy using flags f.
func (s C2C1D) WithFlags(f Flag) C2C1D {
	s.flags = f
	return s
}

// Shape returns the transform length as a one-element slice.
func (s C2C1D) Shape() []int { return []int{s.n} }

// Flags returns the planning flags.
func (s C2C1D) Flags() Flag { return s.flags }

// String describes the settings, e.g. "C2C1D(256, patient)".
func (s C2C1D) String() string {
	return fmt.Sprintf("C2C1D(%d, %s)", s.n, s.flags)
}

// ToPair64 builds a complex128 pair.
func (s C2C1D) ToPair64(opts ...Option) (*Pair[complex128, complex128], error) {
	return BuildC2C[complex128](s, opts...)
}

// ToPair32 builds a complex64 pair.
func (s C2C1D) ToPair32(opts ...Option) (*Pair[complex64, complex64], error) {
	return BuildC2C[complex64](s, opts...)
}

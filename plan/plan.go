package plan

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/cwbudde/algo-fftw/aligned"
)

// ErrUnsupportedRequest is returned by a backend that cannot build a plan for
// a request.
var ErrUnsupportedRequest = errors.New("plan: unsupported request")

// MaxRank is the highest transform rank a request may carry.
const MaxRank = 3

// Kind selects the transform a plan computes.
type Kind int

const (
	// KindR2C reads a real array and writes the non-redundant half spectrum.
	KindR2C Kind = iota
	// KindC2R reads a half spectrum and writes a real array.
	KindC2R
	// KindC2CForward is a complex transform with a negative exponent.
	KindC2CForward
	// KindC2CBackward is a complex transform with a positive exponent.
	KindC2CBackward
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindR2C:
		return "r2c"
	case KindC2R:
		return "c2r"
	case KindC2CForward:
		return "c2c-forward"
	case KindC2CBackward:
		return "c2c-backward"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Real reports whether one side of the transform is real-valued.
func (k Kind) Real() bool {
	return k == KindR2C || k == KindC2R
}

// Precision selects single (float32/complex64) or double
// (float64/complex128) kernels.
type Precision int

const (
	Double Precision = iota
	Single
)

// String returns the precision name.
func (p Precision) String() string {
	switch p {
	case Double:
		return "double"
	case Single:
		return "single"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// Request describes one plan. In and Out are the addresses the plan binds to;
// both must stay valid and unmoved until the plan is destroyed.
//
// For KindR2C, In holds Volume(Shape) reals and Out holds
// Volume(CoefShape(Shape)) complex values; KindC2R swaps the two. For the
// complex kinds both sides hold Volume(Shape) complex values.
type Request struct {
	Kind      Kind
	Precision Precision
	Shape     []int
	In        unsafe.Pointer
	Out       unsafe.Pointer
	Flags     Flag
}

// Validate checks rank, dimensions and pointers.
func (r Request) Validate() error {
	if len(r.Shape) == 0 || len(r.Shape) > MaxRank {
		return fmt.Errorf("%w: rank %d", ErrUnsupportedRequest, len(r.Shape))
	}
	if r.Kind < KindR2C || r.Kind > KindC2CBackward {
		return fmt.Errorf("%w: %v", ErrUnsupportedRequest, r.Kind)
	}
	if r.Precision != Double && r.Precision != Single {
		return fmt.Errorf("%w: %v", ErrUnsupportedRequest, r.Precision)
	}
	if _, ok := Volume(r.Shape); !ok {
		return fmt.Errorf("%w: shape %v", ErrUnsupportedRequest, r.Shape)
	}
	if r.In == nil || r.Out == nil {
		return fmt.Errorf("%w: nil buffer", ErrUnsupportedRequest)
	}
	return nil
}

// Plan is an opaque, precomputed transform bound to fixed buffers.
type Plan interface {
	// Execute runs the transform against the bound buffers.
	Execute()
	// Destroy releases the plan. The plan must not be executed afterwards.
	Destroy()
}

// Describer is implemented by plans that can name the algorithm they chose.
type Describer interface {
	Describe() string
}

// Backend is the native capability set.
type Backend interface {
	Name() string
	// Allocator returns memory with the alignment the backend's kernels expect.
	Allocator() aligned.Allocator
	// NewPlan builds a plan bound to req.In and req.Out. A nil plan with a nil
	// error is a null handle: the backend found no algorithm.
	NewPlan(req Request) (Plan, error)
}

// AllocatorChecker is implemented by backends whose plans may only bind to
// memory from particular allocators.
type AllocatorChecker interface {
	AcceptsAllocator(a aligned.Allocator) bool
}

// Volume returns the product of the dimensions. ok is false when a dimension
// is not positive or the product overflows int.
func Volume(shape []int) (n int, ok bool) {
	if len(shape) == 0 {
		return 0, false
	}
	n = 1
	for _, d := range shape {
		if d <= 0 || n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// CoefShape returns the shape of the half spectrum of a real array: the last
// dimension d becomes d/2+1.
func CoefShape(shape []int) []int {
	out := append([]int(nil), shape...)
	if len(out) > 0 {
		out[len(out)-1] = out[len(out)-1]/2 + 1
	}
	return out
}

package gobackend

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/plan"
)

// Name is the registry name of the backend.
const Name = "go"

func init() {
	plan.Global.Register(plan.Entry{Name: Name, Priority: 0, Backend: New()})
}

// Backend builds pure-Go plans.
type Backend struct {
	alloc aligned.Allocator
}

// New returns a backend that allocates from the Go heap.
func New() *Backend {
	return &Backend{alloc: aligned.Heap}
}

// NewWithAllocator returns a backend whose buffers come from a.
func NewWithAllocator(a aligned.Allocator) *Backend {
	if a == nil {
		a = aligned.Heap
	}
	return &Backend{alloc: a}
}

// Name returns "go".
func (b *Backend) Name() string { return Name }

// Allocator returns the buffer allocator.
func (b *Backend) Allocator() aligned.Allocator { return b.alloc }

// NewPlan builds a plan for req.
func (b *Backend) NewPlan(req plan.Request) (plan.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Precision {
	case plan.Double:
		return newPlanFor[float64, complex128](req)
	case plan.Single:
		return newPlanFor[float32, complex64](req)
	default:
		return nil, fmt.Errorf("%w: precision %v", plan.ErrUnsupportedRequest, req.Precision)
	}
}

func newPlanFor[F algofft.Float, C algofft.Complex](req plan.Request) (plan.Plan, error) {
	if req.Kind.Real() {
		return newRealPlan[F, C](req), nil
	}

	p, err := newComplexPlan[C](req)
	if err != nil {
		return nil, err
	}
	return p, nil
}

package fftw

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/plan"
)

var (
	// ErrInvalidSize is returned when a dimension is not positive or the total
	// element count overflows int.
	ErrInvalidSize = errors.New("fftw: invalid transform size")
	// ErrPrecisionMismatch is returned when the real and complex element types
	// do not share a precision.
	ErrPrecisionMismatch = errors.New("fftw: real and complex precision differ")
	// ErrUnknownBackend is returned by the builder when WithBackendName names
	// no registered backend.
	ErrUnknownBackend = errors.New("fftw: unknown backend")
	// ErrAllocatorRejected is returned when the backend cannot bind plans to
	// memory from the configured allocator.
	ErrAllocatorRejected = errors.New("fftw: allocator not accepted by backend")
	// ErrPlanConstruction is matched by every *PlanError.
	ErrPlanConstruction = errors.New("fftw: plan construction failed")

	// ErrAllocation is returned when aligned buffer memory cannot be obtained.
	ErrAllocation = aligned.ErrAllocation
)

// PlanError reports a plan the backend refused to build.
type PlanError struct {
	Kind    plan.Kind
	Shape   []int
	Flags   plan.Flag
	Backend string
	// Err is the backend's cause; nil when the backend returned a null plan.
	Err error
}

func (e *PlanError) Error() string {
	msg := fmt.Sprintf("fftw: %s plan %v (%s) on backend %q failed", e.Kind, e.Shape, e.Flags, e.Backend)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": null plan"
}

// Is reports whether target is ErrPlanConstruction.
func (e *PlanError) Is(target error) bool {
	return target == ErrPlanConstruction
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

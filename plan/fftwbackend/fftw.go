//go:build fftw && cgo

package fftwbackend

// #cgo LDFLAGS: -lfftw3 -lfftw3f -lm
// #include <stdlib.h>
// #include <fftw3.h>
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/plan"
)

// Name is the registry name of the backend.
const Name = "fftw"

// Priority places the backend ahead of the pure-Go one.
const Priority = 10

var plannerMu sync.Mutex

func init() {
	plan.Global.Register(plan.Entry{Name: Name, Priority: Priority, Backend: New()})
}

// Backend builds FFTW plans.
type Backend struct{}

// New returns the FFTW backend.
func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return Name }

// Allocator returns the fftw_malloc allocator.
func (*Backend) Allocator() aligned.Allocator { return Malloc }

// AcceptsAllocator reports whether a hands out off-heap memory. FFTW keeps
// the buffer addresses inside its plans after the cgo call returns, which
// the cgo pointer rules forbid for unpinned Go heap memory.
func (*Backend) AcceptsAllocator(a aligned.Allocator) bool { return aligned.OffHeap(a) }

// NewPlan plans req. A null FFTW plan is returned as a nil plan with a nil
// error.
func (*Backend) NewPlan(req plan.Request) (plan.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var dims [plan.MaxRank]C.int
	for i, d := range req.Shape {
		if d > int(^C.uint(0)>>1) {
			return nil, fmt.Errorf("%w: dimension %d exceeds C int", plan.ErrUnsupportedRequest, d)
		}
		dims[i] = C.int(d)
	}
	rank := C.int(len(req.Shape))
	flags := C.uint(req.Flags)

	plannerMu.Lock()
	defer plannerMu.Unlock()

	if req.Precision == plan.Single {
		p := planSingle(req, rank, &dims[0], flags)
		if p == nil {
			return nil, nil
		}
		return &singlePlan{p: p}, nil
	}

	p := planDouble(req, rank, &dims[0], flags)
	if p == nil {
		return nil, nil
	}
	return &doublePlan{p: p}, nil
}

func planDouble(req plan.Request, rank C.int, dims *C.int, flags C.uint) C.fftw_plan {
	switch req.Kind {
	case plan.KindR2C:
		return C.fftw_plan_dft_r2c(rank, dims, (*C.double)(req.In), (*C.fftw_complex)(req.Out), flags)
	case plan.KindC2R:
		return C.fftw_plan_dft_c2r(rank, dims, (*C.fftw_complex)(req.In), (*C.double)(req.Out), flags)
	case plan.KindC2CForward:
		return C.fftw_plan_dft(rank, dims, (*C.fftw_complex)(req.In), (*C.fftw_complex)(req.Out), C.FFTW_FORWARD, flags)
	default:
		return C.fftw_plan_dft(rank, dims, (*C.fftw_complex)(req.In), (*C.fftw_complex)(req.Out), C.FFTW_BACKWARD, flags)
	}
}

func planSingle(req plan.Request, rank C.int, dims *C.int, flags C.uint) C.fftwf_plan {
	switch req.Kind {
	case plan.KindR2C:
		return C.fftwf_plan_dft_r2c(rank, dims, (*C.float)(req.In), (*C.fftwf_complex)(req.Out), flags)
	case plan.KindC2R:
		return C.fftwf_plan_dft_c2r(rank, dims, (*C.fftwf_complex)(req.In), (*C.float)(req.Out), flags)
	case plan.KindC2CForward:
		return C.fftwf_plan_dft(rank, dims, (*C.fftwf_complex)(req.In), (*C.fftwf_complex)(req.Out), C.FFTW_FORWARD, flags)
	default:
		return C.fftwf_plan_dft(rank, dims, (*C.fftwf_complex)(req.In), (*C.fftwf_complex)(req.Out), C.FFTW_BACKWARD, flags)
	}
}

type doublePlan struct {
	p C.fftw_plan
}

func (d *doublePlan) Execute() { C.fftw_execute(d.p) }

func (d *doublePlan) Destroy() {
	if d.p == nil {
		return
	}
	plannerMu.Lock()
	C.fftw_destroy_plan(d.p)
	plannerMu.Unlock()
	d.p = nil
}

// Describe returns FFTW's textual plan description.
func (d *doublePlan) Describe() string {
	if d.p == nil {
		return "destroyed"
	}
	s := C.fftw_sprint_plan(d.p)
	defer C.free(unsafe.Pointer(s))
	return C.GoString(s)
}

type singlePlan struct {
	p C.fftwf_plan
}

func (s *singlePlan) Execute() { C.fftwf_execute(s.p) }

func (s *singlePlan) Destroy() {
	if s.p == nil {
		return
	}
	plannerMu.Lock()
	C.fftwf_destroy_plan(s.p)
	plannerMu.Unlock()
	s.p = nil
}

func (s *singlePlan) Describe() string {
	if s.p == nil {
		return "destroyed"
	}
	str := C.fftwf_sprint_plan(s.p)
	defer C.free(unsafe.Pointer(str))
	return C.GoString(str)
}

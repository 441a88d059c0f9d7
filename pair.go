package fftw

import (
	"errors"
	"log/slog"
	"runtime"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/plan"
)

// Pair is a forward/backward transform bound to two owned, aligned buffers.
//
// For real transforms F is float32 or float64 and Coef holds the half spectrum;
// for complex transforms F equals C and both buffers have the logical size.
// A Pair is not safe for concurrent use; independent pairs are. Slices from
// Field and Coef must not be used after Close. A Pair that is dropped without
// Close has its plans destroyed by the collector; its buffers stay valid for
// as long as such slices exist, and off-heap buffers are never returned.
type Pair[F aligned.Element, C algofft.Complex] struct {
	field *aligned.Buffer[F]
	coef  *aligned.Buffer[C]
	res   *resources

	kind    plan.Kind
	shape   []int
	cshape  []int
	n       int
	flags   plan.Flag
	backend string

	closed  bool
	cleanup runtime.Cleanup
}

// Pair64 is the float64 real transform pair.
type Pair64 = Pair[float64, complex128]

// Pair32 is the float32 real transform pair.
type Pair32 = Pair[float32, complex64]

// resources is everything a pair must release. It never points back at the
// Pair so the cleanup can run once the Pair is unreachable.
type resources struct {
	forward, backward plan.Plan
	buffers           []interface{ Free() error }
	done              bool

	// offHeap is set when the buffers come from memory the collector does
	// not manage.
	offHeap bool
	log     *slog.Logger
}

// release destroys the plans, then frees the buffers.
func (r *resources) release() error {
	if r.done {
		return nil
	}
	r.done = true
	r.destroyPlans()

	var errs []error
	for _, b := range r.buffers {
		if err := b.Free(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// collect runs when a Pair becomes unreachable without Close. Slices from
// Field and Coef may still be live, so only the plans are destroyed. Heap
// buffers are reclaimed by the collector through those slices; off-heap
// buffers cannot be tracked and are leaked.
func (r *resources) collect() {
	if r.done {
		return
	}
	r.done = true
	r.destroyPlans()
	if r.offHeap && r.log != nil {
		r.log.Warn("fftw: pair collected without Close, off-heap buffers leaked")
	}
}

func (r *resources) destroyPlans() {
	if r.forward != nil {
		r.forward.Destroy()
	}
	if r.backward != nil {
		r.backward.Destroy()
	}
}

func newPair[F aligned.Element, C algofft.Complex](
	field *aligned.Buffer[F],
	coef *aligned.Buffer[C],
	res *resources,
	kind plan.Kind,
	shape []int,
	flags plan.Flag,
	backend string,
) *Pair[F, C] {
	n, _ := plan.Volume(shape)
	cshape := append([]int(nil), shape...)
	if kind.Real() {
		cshape = plan.CoefShape(shape)
	}

	p := &Pair[F, C]{
		field:   field,
		coef:    coef,
		res:     res,
		kind:    kind,
		shape:   append([]int(nil), shape...),
		cshape:  cshape,
		n:       n,
		flags:   flags,
		backend: backend,
	}
	p.cleanup = runtime.AddCleanup(p, (*resources).collect, res)
	return p
}

// Forward executes the forward plan: it reads Field and writes Coef. The
// contents of Field afterwards depend on the algorithm.
func (p *Pair[F, C]) Forward() {
	p.checkOpen()
	p.res.forward.Execute()
	runtime.KeepAlive(p)
}

// Backward executes the backward plan: it reads Coef and writes Field. The
// result is scaled by LogicalSize. Like Field after Forward, the contents of
// Coef afterwards depend on the algorithm; the FFTW backend may overwrite
// them.
func (p *Pair[F, C]) Backward() {
	p.checkOpen()
	p.res.backward.Execute()
	runtime.KeepAlive(p)
}

// Normalize divides Field by LogicalSize.
func (p *Pair[F, C]) Normalize() {
	p.checkOpen()
	p.field.Scale(1 / float64(p.n))
	runtime.KeepAlive(p)
}

// Field returns the fixed-length field buffer.
func (p *Pair[F, C]) Field() []F { return p.field.Slice() }

// Coef returns the fixed-length coefficient buffer.
func (p *Pair[F, C]) Coef() []C { return p.coef.Slice() }

// LogicalSize returns the product of the shape.
func (p *Pair[F, C]) LogicalSize() int { return p.n }

// Shape returns a copy of the transform shape.
func (p *Pair[F, C]) Shape() []int { return append([]int(nil), p.shape...) }

// CoefShape returns a copy of the coefficient shape.
func (p *Pair[F, C]) CoefShape() []int { return append([]int(nil), p.cshape...) }

// Flags returns the planner flags the pair was built with.
func (p *Pair[F, C]) Flags() plan.Flag { return p.flags }

// Backend returns the name of the backend that built the plans.
func (p *Pair[F, C]) Backend() string { return p.backend }

// Describe names the algorithm the backend chose for the forward plan, or
// "opaque" when the backend does not say.
func (p *Pair[F, C]) Describe() string {
	p.checkOpen()
	return describe(p.res.forward)
}

// Close destroys both plans and then frees both buffers. Calling Close more
// than once is a no-op.
func (p *Pair[F, C]) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.cleanup.Stop()
	return p.res.release()
}

func (p *Pair[F, C]) checkOpen() {
	if p.closed {
		panic("fftw: use of closed Pair")
	}
}

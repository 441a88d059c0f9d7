package fftw

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/plan"
)

// BuildR2C allocates a field and a coefficient buffer for the real transform
// described by s, plans the forward (r2c) and backward (c2r) transforms on
// them and returns the pair.
//
// Errors: ErrInvalidSize for a non-positive dimension or an overflowing
// volume, ErrPrecisionMismatch when F and C differ in precision,
// ErrUnknownBackend, ErrAllocatorRejected, ErrAllocation, and a *PlanError
// (matching ErrPlanConstruction) when the backend cannot plan. Nothing is
// leaked on failure. Both buffers are zero when the pair is returned.
func BuildR2C[F algofft.Float, C algofft.Complex](s R2CSettings, opts ...Option) (*Pair[F, C], error) {
	shape := s.Shape()
	prec, err := matchPrecision[F, C]()
	if err != nil {
		return nil, err
	}
	return build[F, C](plan.KindR2C, plan.KindC2R, prec, shape, s.Flags(), opts)
}

// BuildC2C is BuildR2C for a one-dimensional complex transform. Both buffers
// hold s.Shape()[0] elements.
func BuildC2C[C algofft.Complex](s C2C1D, opts ...Option) (*Pair[C, C], error) {
	return build[C, C](plan.KindC2CForward, plan.KindC2CBackward, precisionOf[C](), s.Shape(), s.Flags(), opts)
}

func build[F aligned.Element, C algofft.Complex](
	fwdKind, bwdKind plan.Kind,
	prec plan.Precision,
	shape []int,
	flags plan.Flag,
	opts []Option,
) (*Pair[F, C], error) {
	if len(shape) == 0 || len(shape) > plan.MaxRank {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidSize, len(shape))
	}
	n, ok := plan.Volume(shape)
	if !ok {
		return nil, fmt.Errorf("%w: shape %v", ErrInvalidSize, shape)
	}
	cn := n
	if fwdKind.Real() {
		cn, _ = plan.Volume(plan.CoefShape(shape))
	}

	cfg, err := ApplyOptions(opts...).resolve()
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.BackendName)
	}
	backend := cfg.Backend
	if c, ok := backend.(plan.AllocatorChecker); ok && !c.AcceptsAllocator(cfg.Allocator) {
		return nil, fmt.Errorf("%w: %s on backend %q", ErrAllocatorRejected, cfg.Allocator.Name(), backend.Name())
	}
	log := cfg.Logger.With(
		slog.String("backend", backend.Name()),
		slog.Any("shape", shape),
		slog.String("flags", flags.String()),
	)

	field, err := aligned.New[F](n, cfg.Allocator)
	if err != nil {
		return nil, fmt.Errorf("fftw: field buffer: %w", err)
	}
	coef, err := aligned.New[C](cn, cfg.Allocator)
	if err != nil {
		_ = field.Free()
		return nil, fmt.Errorf("fftw: coefficient buffer: %w", err)
	}

	res := &resources{
		buffers: []interface{ Free() error }{field, coef},
		offHeap: aligned.OffHeap(cfg.Allocator),
		log:     log,
	}

	start := time.Now()
	res.forward, err = newPlan(backend, plan.Request{
		Kind:      fwdKind,
		Precision: prec,
		Shape:     shape,
		In:        field.Pointer(),
		Out:       coef.Pointer(),
		Flags:     flags,
	})
	if err == nil {
		res.backward, err = newPlan(backend, plan.Request{
			Kind:      bwdKind,
			Precision: prec,
			Shape:     shape,
			In:        coef.Pointer(),
			Out:       field.Pointer(),
			Flags:     flags,
		})
	}
	if err != nil {
		log.Warn("fftw: plan construction failed", slog.Any("error", err))
		_ = res.release()
		return nil, err
	}

	// Measuring planners run trial transforms on the bound buffers.
	field.Zero()
	coef.Zero()

	log.Debug("fftw: plans built",
		slog.String("kind", fwdKind.String()),
		slog.String("kernel", describe(res.forward)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return newPair(field, coef, res, fwdKind, shape, flags, backend.Name()), nil
}

// newPlan asks b for a plan and converts a failure or a null handle into a
// *PlanError.
func newPlan(b plan.Backend, req plan.Request) (plan.Plan, error) {
	p, err := b.NewPlan(req)
	if err != nil || p == nil {
		return nil, &PlanError{
			Kind:    req.Kind,
			Shape:   append([]int(nil), req.Shape...),
			Flags:   req.Flags,
			Backend: b.Name(),
			Err:     err,
		}
	}
	return p, nil
}

func describe(p plan.Plan) string {
	if d, ok := p.(plan.Describer); ok {
		return d.Describe()
	}
	return "opaque"
}

func precisionOf[T aligned.Element]() plan.Precision {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Complex64:
		return plan.Single
	default:
		return plan.Double
	}
}

func matchPrecision[F algofft.Float, C algofft.Complex]() (plan.Precision, error) {
	pf, pc := precisionOf[F](), precisionOf[C]()
	if pf != pc {
		return 0, fmt.Errorf("%w: %v field with %v coefficients", ErrPrecisionMismatch, pf, pc)
	}
	return pf, nil
}

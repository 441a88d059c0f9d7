package gobackend

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/cwbudde/algo-fftw/internal/testutil"
	"github.com/cwbudde/algo-fftw/plan"
)

func r2c64(t *testing.T, shape []int, flags plan.Flag) ([]float64, []complex128, plan.Plan, plan.Plan) {
	t.Helper()
	vol, _ := plan.Volume(shape)
	cvol, _ := plan.Volume(plan.CoefShape(shape))
	field := make([]float64, vol)
	coef := make([]complex128, cvol)

	b := New()
	fwd, err := b.NewPlan(plan.Request{
		Kind:      plan.KindR2C,
		Precision: plan.Double,
		Shape:     shape,
		In:        unsafe.Pointer(&field[0]),
		Out:       unsafe.Pointer(&coef[0]),
		Flags:     flags,
	})
	if err != nil {
		t.Fatalf("r2c plan: %v", err)
	}
	bwd, err := b.NewPlan(plan.Request{
		Kind:      plan.KindC2R,
		Precision: plan.Double,
		Shape:     shape,
		In:        unsafe.Pointer(&coef[0]),
		Out:       unsafe.Pointer(&field[0]),
		Flags:     flags,
	})
	if err != nil {
		t.Fatalf("c2r plan: %v", err)
	}
	t.Cleanup(func() {
		fwd.Destroy()
		bwd.Destroy()
	})
	return field, coef, fwd, bwd
}

func TestImpulseSpectrumIsFlat(t *testing.T) {
	field, coef, fwd, _ := r2c64(t, []int{8}, plan.Estimate)
	copy(field, testutil.Impulse(8, 0))
	fwd.Execute()

	if len(coef) != 5 {
		t.Fatalf("len(coef) = %d, want 5", len(coef))
	}
	want := []complex128{1, 1, 1, 1, 1}
	testutil.RequireComplexNearlyEqual(t, coef, want, 1e-12)
}

func TestForwardMatchesNaiveDFT(t *testing.T) {
	shapes := [][]int{{1}, {2}, {7}, {16}, {30}, {4, 6}, {5, 3}, {3, 4, 5}, {2, 2, 8}}
	for _, shape := range shapes {
		for _, flags := range []plan.Flag{plan.Estimate, plan.Measure} {
			field, coef, fwd, _ := r2c64(t, shape, flags)
			x := testutil.DeterministicNoise(11, 1, len(field))
			copy(field, x)
			fwd.Execute()

			want := testutil.NaiveRealDFT(x, shape)
			testutil.RequireComplexNearlyEqual(t, coef, want, 1e-9)
		}
	}
}

func TestRoundTripScalesByVolume(t *testing.T) {
	shapes := [][]int{{1}, {8}, {9}, {64}, {6, 10}, {3, 3}, {4, 2, 6}}
	for _, shape := range shapes {
		field, coef, fwd, bwd := r2c64(t, shape, plan.Measure)
		x := testutil.DeterministicNoise(5, 2, len(field))
		copy(field, x)

		fwd.Execute()
		saved := append([]complex128(nil), coef...)
		for i := range field {
			field[i] = 0
		}
		bwd.Execute()

		testutil.RequireSliceNearlyEqual(t, field, testutil.Scaled(x, float64(len(x))), 1e-9*float64(len(x)))
		// c2r leaves the half spectrum untouched.
		testutil.RequireComplexNearlyEqual(t, coef, saved, 0)
	}
}

func TestSinglePrecisionRoundTrip(t *testing.T) {
	for _, shape := range [][]int{{16}, {15}, {4, 8}, {2, 3, 4}} {
		vol, _ := plan.Volume(shape)
		cvol, _ := plan.Volume(plan.CoefShape(shape))
		field := make([]float32, vol)
		coef := make([]complex64, cvol)

		b := New()
		fwd, err := b.NewPlan(plan.Request{
			Kind: plan.KindR2C, Precision: plan.Single, Shape: shape,
			In: unsafe.Pointer(&field[0]), Out: unsafe.Pointer(&coef[0]),
		})
		if err != nil {
			t.Fatal(err)
		}
		bwd, err := b.NewPlan(plan.Request{
			Kind: plan.KindC2R, Precision: plan.Single, Shape: shape,
			In: unsafe.Pointer(&coef[0]), Out: unsafe.Pointer(&field[0]),
		})
		if err != nil {
			t.Fatal(err)
		}

		x := testutil.DeterministicNoise(9, 1, vol)
		copy(field, testutil.ToFloat32(x))
		fwd.Execute()
		bwd.Execute()
		fwd.Destroy()
		bwd.Destroy()

		got := testutil.Scaled(testutil.ToFloat64(field), 1/float64(vol))
		testutil.RequireSliceNearlyEqual(t, got, x, 1e-5)
	}
}

func TestBackwardIgnoresImaginaryDCAndNyquist(t *testing.T) {
	field, coef, fwd, bwd := r2c64(t, []int{8}, plan.Estimate)
	copy(field, testutil.DeterministicNoise(2, 1, 8))
	fwd.Execute()
	bwd.Execute()
	want := append([]float64(nil), field...)

	coef[0] += 3i
	coef[4] -= 2i
	bwd.Execute()
	testutil.RequireSliceNearlyEqual(t, field, want, 1e-12)
}

func TestComplexRoundTrip(t *testing.T) {
	const n = 12
	in := testutil.DeterministicComplexNoise(4, 1, n)
	spec := make([]complex128, n)
	back := make([]complex128, n)

	b := New()
	fwd, err := b.NewPlan(plan.Request{
		Kind: plan.KindC2CForward, Shape: []int{n},
		In: unsafe.Pointer(&in[0]), Out: unsafe.Pointer(&spec[0]), Flags: plan.Measure,
	})
	if err != nil {
		t.Fatal(err)
	}
	bwd, err := b.NewPlan(plan.Request{
		Kind: plan.KindC2CBackward, Shape: []int{n},
		In: unsafe.Pointer(&spec[0]), Out: unsafe.Pointer(&back[0]), Flags: plan.Measure,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer fwd.Destroy()
	defer bwd.Destroy()

	fwd.Execute()
	testutil.RequireComplexNearlyEqual(t, spec, testutil.NaiveDFT(in, -1), 1e-10)

	bwd.Execute()
	for i := range back {
		back[i] /= n
	}
	testutil.RequireComplexNearlyEqual(t, back, in, 1e-12)
}

func TestComplexRankAboveOneUnsupported(t *testing.T) {
	buf := make([]complex128, 16)
	_, err := New().NewPlan(plan.Request{
		Kind: plan.KindC2CForward, Shape: []int{4, 4},
		In: unsafe.Pointer(&buf[0]), Out: unsafe.Pointer(&buf[0]),
	})
	if !errors.Is(err, plan.ErrUnsupportedRequest) {
		t.Fatalf("err = %v, want ErrUnsupportedRequest", err)
	}
}

func TestInvalidRequestRejected(t *testing.T) {
	_, err := New().NewPlan(plan.Request{Kind: plan.KindR2C, Shape: []int{0}})
	if !errors.Is(err, plan.ErrUnsupportedRequest) {
		t.Fatalf("err = %v, want ErrUnsupportedRequest", err)
	}
}

func TestDescribe(t *testing.T) {
	_, _, fwd, _ := r2c64(t, []int{4, 6}, plan.Estimate)
	d, ok := fwd.(plan.Describer)
	if !ok {
		t.Fatal("plan does not implement Describer")
	}
	s := d.Describe()
	if !strings.HasPrefix(s, "row=") || !strings.Contains(s, "axes=[") {
		t.Fatalf("Describe() = %q", s)
	}
}

func TestDestroyedPlanDescribe(t *testing.T) {
	field := make([]float64, 4)
	coef := make([]complex128, 3)
	p, err := New().NewPlan(plan.Request{
		Kind: plan.KindR2C, Shape: []int{4},
		In: unsafe.Pointer(&field[0]), Out: unsafe.Pointer(&coef[0]),
	})
	if err != nil {
		t.Fatal(err)
	}
	p.Destroy()
	if got := p.(plan.Describer).Describe(); got != "destroyed" {
		t.Fatalf("Describe() = %q, want destroyed", got)
	}
}

func TestRegisteredInGlobal(t *testing.T) {
	b, ok := plan.Global.Lookup(Name)
	if !ok {
		t.Fatalf("backend %q not registered", Name)
	}
	if b.Name() != Name {
		t.Fatalf("Name() = %q", b.Name())
	}
}

func TestNewWithAllocator(t *testing.T) {
	if got := NewWithAllocator(nil).Allocator(); got == nil {
		t.Fatal("nil allocator not replaced")
	}
}

func TestParsevalSineBin(t *testing.T) {
	const n = 64
	field, coef, fwd, _ := r2c64(t, []int{n}, plan.Patient)
	copy(field, testutil.DeterministicSine(4, n, 1, n))
	fwd.Execute()

	for k, v := range coef {
		mag := math.Hypot(real(v), imag(v))
		want := 0.0
		if k == 4 {
			want = n / 2
		}
		if math.Abs(mag-want) > 1e-9 {
			t.Fatalf("bin %d magnitude %v, want %v", k, mag, want)
		}
	}
}

package gobackend

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// kernel is anything the planner can time and describe.
type kernel interface {
	name() string
}

// line is a 1-D complex transform of a fixed length.
type line[C algofft.Complex] interface {
	kernel
	forward(dst, src []C)
	// inverse is unnormalized.
	inverse(dst, src []C)
}

// realLine is a 1-D real transform of length n producing n/2+1 bins.
type realLine[F algofft.Float, C algofft.Complex] interface {
	kernel
	forward(dst []C, src []F)
	// inverse is unnormalized and ignores the imaginary part of the DC bin
	// (and of the Nyquist bin for even n).
	inverse(dst []F, src []C)
}

type algofftLine[C algofft.Complex] struct {
	plan  *algofft.Plan[C]
	n     int
	scale C
}

func newAlgofftLine[C algofft.Complex](n int) (*algofftLine[C], error) {
	p, err := algofft.NewPlanT[C](n)
	if err != nil {
		return nil, err
	}
	return &algofftLine[C]{
		plan:  p,
		n:     n,
		scale: C(complex(float64(n), 0)),
	}, nil
}

func (l *algofftLine[C]) name() string { return fmt.Sprintf("algofft(%d)", l.n) }

func (l *algofftLine[C]) forward(dst, src []C) {
	if err := l.plan.Forward(dst, src); err != nil {
		panic(fmt.Sprintf("gobackend: algofft forward: %v", err))
	}
}

func (l *algofftLine[C]) inverse(dst, src []C) {
	if err := l.plan.Inverse(dst, src); err != nil {
		panic(fmt.Sprintf("gobackend: algofft inverse: %v", err))
	}
	// algo-fft normalizes its inverse by 1/n.
	for i := range dst {
		dst[i] *= l.scale
	}
}

type gonumLine[C algofft.Complex] struct {
	fft     *fourier.CmplxFFT
	n       int
	in, out []complex128
}

func newGonumLine[C algofft.Complex](n int) *gonumLine[C] {
	return &gonumLine[C]{
		fft: fourier.NewCmplxFFT(n),
		n:   n,
		in:  make([]complex128, n),
		out: make([]complex128, n),
	}
}

func (l *gonumLine[C]) name() string { return fmt.Sprintf("gonum(%d)", l.n) }

func (l *gonumLine[C]) forward(dst, src []C) {
	for i, v := range src {
		l.in[i] = complex128(v)
	}
	l.fft.Coefficients(l.out, l.in)
	for i, v := range l.out {
		dst[i] = C(v)
	}
}

func (l *gonumLine[C]) inverse(dst, src []C) {
	for i, v := range src {
		l.in[i] = complex128(v)
	}
	l.fft.Sequence(l.out, l.in)
	for i, v := range l.out {
		dst[i] = C(v)
	}
}

// complexRealLine runs a real transform through a full-length complex line.
type complexRealLine[F algofft.Float, C algofft.Complex] struct {
	inner line[C]
	n     int
	a, b  []C
}

func newComplexRealLine[F algofft.Float, C algofft.Complex](inner line[C], n int) *complexRealLine[F, C] {
	return &complexRealLine[F, C]{
		inner: inner,
		n:     n,
		a:     make([]C, n),
		b:     make([]C, n),
	}
}

func (l *complexRealLine[F, C]) name() string { return "real/" + l.inner.name() }

func (l *complexRealLine[F, C]) forward(dst []C, src []F) {
	for i, v := range src {
		l.a[i] = C(complex(float64(v), 0))
	}
	l.inner.forward(l.b, l.a)
	copy(dst, l.b[:l.n/2+1])
}

func (l *complexRealLine[F, C]) inverse(dst []F, src []C) {
	n, half := l.n, l.n/2
	a := l.a

	copy(a, src[:half+1])
	a[0] = realPart(a[0])
	if n%2 == 0 {
		a[half] = realPart(a[half])
	}
	for k := half + 1; k < n; k++ {
		a[k] = conj(a[n-k])
	}

	l.inner.inverse(l.b, a)
	for i := range dst {
		dst[i] = F(real(complex128(l.b[i])))
	}
}

type gonumRealLine[F algofft.Float, C algofft.Complex] struct {
	fft  *fourier.FFT
	n    int
	seq  []float64
	coef []complex128
}

func newGonumRealLine[F algofft.Float, C algofft.Complex](n int) *gonumRealLine[F, C] {
	return &gonumRealLine[F, C]{
		fft:  fourier.NewFFT(n),
		n:    n,
		seq:  make([]float64, n),
		coef: make([]complex128, n/2+1),
	}
}

func (l *gonumRealLine[F, C]) name() string { return fmt.Sprintf("gonum-real(%d)", l.n) }

func (l *gonumRealLine[F, C]) forward(dst []C, src []F) {
	for i, v := range src {
		l.seq[i] = float64(v)
	}
	l.fft.Coefficients(l.coef, l.seq)
	for k, v := range l.coef {
		dst[k] = C(v)
	}
}

func (l *gonumRealLine[F, C]) inverse(dst []F, src []C) {
	for k := range l.coef {
		l.coef[k] = complex128(src[k])
	}
	l.fft.Sequence(l.seq, l.coef)
	for i, v := range l.seq {
		dst[i] = F(v)
	}
}

func conj[C algofft.Complex](c C) C {
	x := complex128(c)
	return C(complex(real(x), -imag(x)))
}

func realPart[C algofft.Complex](c C) C {
	return C(complex(real(complex128(c)), 0))
}

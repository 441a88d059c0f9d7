package gobackend

import (
	"fmt"
	"strings"
	"unsafe"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fftw/plan"
)

// realPlan computes an r2c or c2r transform of rank 1..3.
//
// r2c transforms every row along the last axis into the half spectrum, then
// runs complex transforms along the remaining axes of the half spectrum. c2r
// reverses the order on a scratch copy, so the bound coefficients survive.
type realPlan[F algofft.Float, C algofft.Complex] struct {
	kind  plan.Kind
	field []F
	coef  []C

	n, h, rows int
	cshape     []int
	strides    []int

	row  realLine[F, C]
	axes []line[C]

	work      []C
	gin, gout []C
}

func newRealPlan[F algofft.Float, C algofft.Complex](req plan.Request) *realPlan[F, C] {
	vol, _ := plan.Volume(req.Shape)
	cshape := plan.CoefShape(req.Shape)
	cvol, _ := plan.Volume(cshape)

	fieldPtr, coefPtr := req.In, req.Out
	if req.Kind == plan.KindC2R {
		fieldPtr, coefPtr = req.Out, req.In
	}

	rank := len(req.Shape)
	n := req.Shape[rank-1]
	strategy := req.Flags.Strategy()

	p := &realPlan[F, C]{
		kind:   req.Kind,
		field:  unsafe.Slice((*F)(fieldPtr), vol),
		coef:   unsafe.Slice((*C)(coefPtr), cvol),
		n:      n,
		h:      n/2 + 1,
		rows:   vol / n,
		cshape: cshape,
		row:    chooseRealLine[F, C](n, strategy),
	}

	p.strides = make([]int, rank)
	stride := 1
	for a := rank - 1; a >= 0; a-- {
		p.strides[a] = stride
		stride *= cshape[a]
	}

	maxDim := 0
	byLen := make(map[int]line[C])
	for a := 0; a < rank-1; a++ {
		m := cshape[a]
		ln, ok := byLen[m]
		if !ok {
			ln = chooseComplexLine[C](m, strategy)
			byLen[m] = ln
		}
		p.axes = append(p.axes, ln)
		maxDim = max(maxDim, m)
	}

	if len(p.axes) > 0 {
		p.gin = make([]C, maxDim)
		p.gout = make([]C, maxDim)
		if p.kind == plan.KindC2R {
			p.work = make([]C, cvol)
		}
	}
	return p
}

func (p *realPlan[F, C]) Execute() {
	if p.kind == plan.KindR2C {
		p.forward()
		return
	}
	p.backward()
}

func (p *realPlan[F, C]) forward() {
	n, h := p.n, p.h
	for r := range p.rows {
		p.row.forward(p.coef[r*h:(r+1)*h], p.field[r*n:(r+1)*n])
	}
	for a := range p.axes {
		p.transformAxis(p.coef, a, false)
	}
}

func (p *realPlan[F, C]) backward() {
	spec := p.coef
	if len(p.axes) > 0 {
		copy(p.work, p.coef)
		spec = p.work
		for a := range p.axes {
			p.transformAxis(spec, a, true)
		}
	}

	n, h := p.n, p.h
	for r := range p.rows {
		p.row.inverse(p.field[r*n:(r+1)*n], spec[r*h:(r+1)*h])
	}
}

// transformAxis applies the line kernel of axis to every 1-D slice of data
// along that axis.
func (p *realPlan[F, C]) transformAxis(data []C, axis int, inverse bool) {
	m := p.cshape[axis]
	stride := p.strides[axis]
	block := m * stride
	ln := p.axes[axis]
	in, out := p.gin[:m], p.gout[:m]

	for base := 0; base < len(data); base += block {
		for j := range stride {
			off := base + j
			for i := range m {
				in[i] = data[off+i*stride]
			}
			if inverse {
				ln.inverse(out, in)
			} else {
				ln.forward(out, in)
			}
			for i := range m {
				data[off+i*stride] = out[i]
			}
		}
	}
}

func (p *realPlan[F, C]) Destroy() {
	p.field = nil
	p.coef = nil
	p.work = nil
	p.row = nil
	p.axes = nil
}

// Describe names the chosen kernels, e.g. "row=gonum-real(6) axes=[algofft(4)]".
func (p *realPlan[F, C]) Describe() string {
	if p.row == nil {
		return "destroyed"
	}
	if len(p.axes) == 0 {
		return "row=" + p.row.name()
	}
	names := make([]string, len(p.axes))
	for i, a := range p.axes {
		names[i] = a.name()
	}
	return fmt.Sprintf("row=%s axes=[%s]", p.row.name(), strings.Join(names, " "))
}

package gobackend

import (
	"fmt"
	"unsafe"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fftw/plan"
)

type complexPlan[C algofft.Complex] struct {
	in, out []C
	ln      line[C]
	inverse bool
}

func newComplexPlan[C algofft.Complex](req plan.Request) (*complexPlan[C], error) {
	if len(req.Shape) != 1 {
		return nil, fmt.Errorf("%w: complex transform of rank %d", plan.ErrUnsupportedRequest, len(req.Shape))
	}
	n := req.Shape[0]

	return &complexPlan[C]{
		in:      unsafe.Slice((*C)(req.In), n),
		out:     unsafe.Slice((*C)(req.Out), n),
		ln:      chooseComplexLine[C](n, req.Flags.Strategy()),
		inverse: req.Kind == plan.KindC2CBackward,
	}, nil
}

func (p *complexPlan[C]) Execute() {
	if p.inverse {
		p.ln.inverse(p.out, p.in)
		return
	}
	p.ln.forward(p.out, p.in)
}

func (p *complexPlan[C]) Destroy() {
	p.in = nil
	p.out = nil
	p.ln = nil
}

func (p *complexPlan[C]) Describe() string {
	if p.ln == nil {
		return "destroyed"
	}
	return p.ln.name()
}

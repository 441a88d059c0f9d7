package plan

import (
	"errors"
	"math"
	"testing"
	"unsafe"
)

func TestVolume(t *testing.T) {
	tests := []struct {
		shape  []int
		want   int
		wantOK bool
	}{
		{[]int{8}, 8, true},
		{[]int{4, 6}, 24, true},
		{[]int{2, 3, 5}, 30, true},
		{nil, 0, false},
		{[]int{0}, 0, false},
		{[]int{4, -1}, 0, false},
		{[]int{math.MaxInt, 2}, 0, false},
	}
	for _, tt := range tests {
		got, ok := Volume(tt.shape)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Volume(%v) = %d, %v; want %d, %v", tt.shape, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCoefShape(t *testing.T) {
	tests := []struct {
		shape []int
		want  []int
	}{
		{[]int{1}, []int{1}},
		{[]int{8}, []int{5}},
		{[]int{7}, []int{4}},
		{[]int{4, 6}, []int{4, 4}},
		{[]int{3, 4, 5}, []int{3, 4, 3}},
	}
	for _, tt := range tests {
		got := CoefShape(tt.shape)
		if len(got) != len(tt.want) {
			t.Fatalf("CoefShape(%v) = %v, want %v", tt.shape, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("CoefShape(%v) = %v, want %v", tt.shape, got, tt.want)
			}
		}
	}

	shape := []int{4, 8}
	_ = CoefShape(shape)
	if shape[1] != 8 {
		t.Fatal("CoefShape modified its argument")
	}
}

func TestRequestValidate(t *testing.T) {
	var x [4]float64
	p := unsafe.Pointer(&x[0])

	valid := Request{Kind: KindR2C, Precision: Double, Shape: []int{4}, In: p, Out: p}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request: %v", err)
	}

	bad := []Request{
		{Kind: KindR2C, Shape: nil, In: p, Out: p},
		{Kind: KindR2C, Shape: []int{2, 2, 2, 2}, In: p, Out: p},
		{Kind: KindR2C, Shape: []int{0}, In: p, Out: p},
		{Kind: KindR2C, Shape: []int{4}, In: nil, Out: p},
		{Kind: Kind(9), Shape: []int{4}, In: p, Out: p},
		{Kind: KindR2C, Precision: Precision(5), Shape: []int{4}, In: p, Out: p},
	}
	for i, req := range bad {
		if err := req.Validate(); !errors.Is(err, ErrUnsupportedRequest) {
			t.Errorf("case %d: err = %v, want ErrUnsupportedRequest", i, err)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindR2C.String() != "r2c" || KindC2CBackward.String() != "c2c-backward" {
		t.Fatal("unexpected kind names")
	}
	if !KindC2R.Real() || KindC2CForward.Real() {
		t.Fatal("Real() mismatch")
	}
}

package aligned

import (
	"reflect"
	"unsafe"

	"github.com/cwbudde/algo-vecmath"
)

// Scale multiplies every element by s. Complex elements are scaled on both
// parts. float64 and complex128 buffers use the SIMD block kernels.
func (b *Buffer[T]) Scale(s float64) {
	ScaleSlice(b.data, s)
}

// ScaleSlice multiplies every element of x by s in place.
func ScaleSlice[T Element](x []T, s float64) {
	if len(x) == 0 {
		return
	}

	f64, f32 := scalarView(x)
	if f64 != nil {
		vecmath.ScaleBlock(f64, f64, s)
		return
	}

	s32 := float32(s)
	for i := range f32 {
		f32[i] *= s32
	}
}

// scalarView reinterprets x as its underlying floating-point parts. Exactly one
// of the returned slices is non-nil for a non-empty x.
func scalarView[T Element](x []T) ([]float64, []float32) {
	p := unsafe.Pointer(unsafe.SliceData(x))
	n := len(x)

	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float64:
		return unsafe.Slice((*float64)(p), n), nil
	case reflect.Complex128:
		return unsafe.Slice((*float64)(p), 2*n), nil
	case reflect.Float32:
		return nil, unsafe.Slice((*float32)(p), n)
	default:
		return nil, unsafe.Slice((*float32)(p), 2*n)
	}
}

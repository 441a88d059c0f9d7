package aligned

import (
	"unsafe"

	"github.com/cwbudde/algo-fftw/internal/cpu"
)

// Alignment boundaries in bytes.
const (
	MinAlignment    uintptr = 16
	AVXAlignment    uintptr = 32
	AVX512Alignment uintptr = 64
)

// Element is the set of numeric types a Buffer can hold.
type Element interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// SIMDAlignment returns the vector alignment for the widest SIMD extension
// available on this machine.
func SIMDAlignment() uintptr {
	return alignmentFor(cpu.DetectFeatures())
}

func alignmentFor(f cpu.Features) uintptr {
	switch {
	case f.ForceGeneric:
		return MinAlignment
	case f.HasAVX512:
		return AVX512Alignment
	case f.HasAVX2, f.HasAVX:
		return AVXAlignment
	default:
		return MinAlignment
	}
}

// Alignment returns the required start-address boundary for buffers of T.
func Alignment[T Element]() uintptr {
	var zero T
	align := SIMDAlignment()
	if natural := unsafe.Alignof(zero); natural > align {
		align = natural
	}
	return align
}

// IsAligned reports whether p is a multiple of align. align must be a power of two.
func IsAligned(p unsafe.Pointer, align uintptr) bool {
	return uintptr(p)&(align-1) == 0
}

func isPowerOfTwo(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

func alignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

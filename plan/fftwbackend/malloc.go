//go:build fftw && cgo

package fftwbackend

// #include <fftw3.h>
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/algo-fftw/aligned"
)

// Malloc allocates with fftw_malloc. Requests with an alignment above what
// fftw_malloc guarantees are over-allocated and offset.
var Malloc aligned.Allocator = mallocAllocator{}

type mallocAllocator struct{}

func (mallocAllocator) Name() string { return "fftw_malloc" }

func (mallocAllocator) OffHeap() bool { return true }

func (mallocAllocator) Allocate(size, align uintptr) (aligned.Block, error) {
	if size == 0 || align == 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: size %d, alignment %d", aligned.ErrAllocation, size, align)
	}
	if size+align < size {
		return nil, fmt.Errorf("%w: %d bytes overflows", aligned.ErrAllocation, size)
	}

	base := C.fftw_malloc(C.size_t(size + align))
	if base == nil {
		return nil, fmt.Errorf("%w: fftw_malloc(%d) returned NULL", aligned.ErrAllocation, size+align)
	}

	addr := uintptr(base)
	off := (align - addr%align) % align
	return &mallocBlock{base: base, ptr: unsafe.Add(base, off)}, nil
}

type mallocBlock struct {
	base unsafe.Pointer
	ptr  unsafe.Pointer
}

func (b *mallocBlock) Pointer() unsafe.Pointer { return b.ptr }

func (b *mallocBlock) Release() error {
	if b.base == nil {
		return nil
	}
	C.fftw_free(b.base)
	b.base = nil
	b.ptr = nil
	return nil
}

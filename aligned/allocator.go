package aligned

import (
	"fmt"
	"unsafe"
)

// maxBytes caps a single allocation at 1<<46 bytes on 64-bit platforms and
// 1<<31 on 32-bit ones. Requests above it fail with ErrAllocation instead of
// reaching the runtime's out-of-memory path.
const maxBytes = uintptr(1) << (31 + 15*(^uintptr(0)>>63))

// Block is a region of memory returned by an Allocator.
type Block interface {
	// Pointer returns the aligned start of the region.
	Pointer() unsafe.Pointer
	// Release returns the region to its allocator. The pointer must not be
	// used afterwards.
	Release() error
}

// Allocator hands out aligned memory blocks.
type Allocator interface {
	Name() string
	// Allocate returns at least size bytes starting at a multiple of align.
	// Failures wrap ErrAllocation.
	Allocate(size, align uintptr) (Block, error)
}

// OffHeap reports whether a hands out memory the Go collector does not
// manage. Such memory may be retained by native code after a call returns,
// and is only returned to the system by Buffer.Free. Allocators opt in with
// an OffHeap() bool method.
func OffHeap(a Allocator) bool {
	o, ok := a.(interface{ OffHeap() bool })
	return ok && o.OffHeap()
}

// Heap allocates from the Go heap. The Go collector never moves heap objects,
// so the returned address is stable for the life of the block.
var Heap Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Name() string { return "heap" }

func (heapAllocator) Allocate(size, align uintptr) (Block, error) {
	if err := checkRequest(size, align); err != nil {
		return nil, err
	}

	backing := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(backing)))
	off := alignUp(base, align) - base

	return &heapBlock{
		backing: backing,
		ptr:     unsafe.Pointer(&backing[off]),
	}, nil
}

type heapBlock struct {
	backing []byte
	ptr     unsafe.Pointer
}

func (b *heapBlock) Pointer() unsafe.Pointer { return b.ptr }

func (b *heapBlock) Release() error {
	b.backing = nil
	b.ptr = nil
	return nil
}

func checkRequest(size, align uintptr) error {
	if !isPowerOfTwo(align) {
		return fmt.Errorf("%w: alignment %d is not a power of two", ErrAllocation, align)
	}
	if size == 0 {
		return fmt.Errorf("%w: zero-byte request", ErrAllocation)
	}
	if size > maxBytes || size+align < size {
		return fmt.Errorf("%w: %d bytes exceeds the allocation limit", ErrAllocation, size)
	}
	return nil
}

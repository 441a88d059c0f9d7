package aligned

import (
	"errors"
	"fmt"
	"unsafe"
)

// Buffer is a fixed-length, aligned block of N elements of T.
//
// The start address is fixed from New until Free. A Buffer is not safe for
// concurrent mutation.
type Buffer[T Element] struct {
	data  []T
	block Block
	align uintptr
	alloc string
}

// New allocates a zero-filled buffer of exactly length elements from a.
// A nil allocator means Heap.
func New[T Element](length int, a Allocator) (*Buffer[T], error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if a == nil {
		a = Heap
	}

	var zero T
	elem := unsafe.Sizeof(zero)
	if uintptr(length) > maxBytes/elem {
		return nil, fmt.Errorf("%w: %d elements of %d bytes exceeds the allocation limit", ErrAllocation, length, elem)
	}

	align := Alignment[T]()
	block, err := a.Allocate(uintptr(length)*elem, align)
	if err != nil {
		if !errors.Is(err, ErrAllocation) {
			err = fmt.Errorf("%w: %s: %w", ErrAllocation, a.Name(), err)
		}
		return nil, err
	}

	p := block.Pointer()
	if p == nil || !IsAligned(p, align) {
		_ = block.Release()
		return nil, fmt.Errorf("%w: %s returned block %p not aligned to %d bytes", ErrAllocation, a.Name(), p, align)
	}

	data := unsafe.Slice((*T)(p), length)
	clear(data)

	return &Buffer[T]{
		data:  data,
		block: block,
		align: align,
		alloc: a.Name(),
	}, nil
}

// Len returns the number of elements, or 0 after Free.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// At returns element i. It panics if i is out of range.
func (b *Buffer[T]) At(i int) T {
	b.checkIndex(i)
	return b.data[i]
}

// Set stores v at element i. It panics if i is out of range.
func (b *Buffer[T]) Set(i int, v T) {
	b.checkIndex(i)
	b.data[i] = v
}

func (b *Buffer[T]) checkIndex(i int) {
	if i < 0 || i >= len(b.data) {
		panic(fmt.Sprintf("aligned: index %d out of range [0:%d]", i, len(b.data)))
	}
}

// Slice returns the buffer contents as a slice with len == cap.
// Writes through the slice are writes to the buffer. Returns nil after Free.
func (b *Buffer[T]) Slice() []T {
	return b.data[:len(b.data):len(b.data)]
}

// Pointer returns the start address of the buffer for binding plans.
func (b *Buffer[T]) Pointer() unsafe.Pointer {
	if b.data == nil {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b.data))
}

// Addr returns the start address as an integer.
func (b *Buffer[T]) Addr() uintptr {
	return uintptr(b.Pointer())
}

// Alignment returns the boundary the buffer was allocated at.
func (b *Buffer[T]) Alignment() uintptr {
	return b.align
}

// Allocator returns the name of the allocator that owns the memory.
func (b *Buffer[T]) Allocator() string {
	return b.alloc
}

// Zero sets every element to 0.
func (b *Buffer[T]) Zero() {
	clear(b.data)
}

// CopyFrom copies min(len(src), Len()) elements and returns the count.
func (b *Buffer[T]) CopyFrom(src []T) int {
	return copy(b.data, src)
}

// Free releases the memory. Calling Free more than once is a no-op.
func (b *Buffer[T]) Free() error {
	if b.block == nil {
		return nil
	}
	err := b.block.Release()
	b.block = nil
	b.data = nil
	return err
}

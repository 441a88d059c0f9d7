//go:build linux || darwin || freebsd

package aligned

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mmap allocates anonymous private mappings outside the Go heap. Mappings are
// page aligned and zero filled, so any alignment up to the page size is met.
var Mmap Allocator = mmapAllocator{}

type mmapAllocator struct{}

func (mmapAllocator) Name() string { return "mmap" }

func (mmapAllocator) OffHeap() bool { return true }

func (mmapAllocator) Allocate(size, align uintptr) (Block, error) {
	if err := checkRequest(size, align); err != nil {
		return nil, err
	}
	page := uintptr(unix.Getpagesize())
	if align > page {
		return nil, fmt.Errorf("%w: alignment %d exceeds page size %d", ErrAllocation, align, page)
	}

	data, err := unix.Mmap(-1, 0, int(alignUp(size, page)), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrAllocation, size, err)
	}
	return &mmapBlock{data: data}, nil
}

type mmapBlock struct {
	data []byte
}

func (b *mmapBlock) Pointer() unsafe.Pointer {
	if b.data == nil {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b.data))
}

func (b *mmapBlock) Release() error {
	if b.data == nil {
		return nil
	}
	err := unix.Munmap(b.data)
	b.data = nil
	if err != nil {
		return fmt.Errorf("aligned: munmap: %w", err)
	}
	return nil
}

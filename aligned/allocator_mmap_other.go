//go:build !linux && !darwin && !freebsd

package aligned

// Mmap falls back to the heap allocator on platforms without anonymous
// mappings in golang.org/x/sys/unix.
var Mmap Allocator = Heap

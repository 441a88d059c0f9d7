// Package aligned provides fixed-length numeric buffers whose first element sits
// on a SIMD-friendly address boundary.
//
// Transform plans bind to buffer addresses when they are built, so a [Buffer]
// never grows, shrinks or moves once allocated. The slice returned by
// [Buffer.Slice] has len == cap; appending to it copies instead of touching the
// buffer. Freeing a buffer while a plan still references it invalidates that
// plan; this is a documented precondition and is not checked at runtime.
//
// # Alignment
//
// [Alignment] reports the boundary required for an element type. It is the
// larger of the type's natural alignment and the vector width of the widest
// SIMD extension detected on the host:
//
//	AVX-512       64 bytes
//	AVX / AVX2    32 bytes
//	SSE2 / NEON   16 bytes
//	generic       16 bytes
//
// # Allocators
//
// Memory comes from an [Allocator]. [Heap] over-allocates on the Go heap and
// offsets into the block. [Mmap] maps anonymous pages outside the Go heap, which
// suits buffers handed to native code. Transform backends may supply their own
// allocator (fftw_malloc for the cgo FFTW backend).
package aligned

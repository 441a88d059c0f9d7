// Package plan defines the capability set a transform backend must provide and
// the planning-strategy vocabulary passed through to it.
//
// A backend mirrors the native FFTW C API: it builds plans bound to the
// addresses of an input and an output buffer, executes them, destroys them,
// and hands out memory with the alignment its kernels expect. Plans are opaque
// handles; callers never see how a backend computes the transform.
//
// Backends register themselves with [Global] from an init function. The
// pure-Go backend (package gobackend) is always present; the cgo FFTW backend
// (package fftwbackend) is compiled in with the fftw build tag and takes
// priority when present.
package plan

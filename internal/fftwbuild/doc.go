// Package fftwbuild fetches, verifies and compiles the FFTW 3 sources so the
// fftw backend can link them statically.
//
// A [Builder] downloads the release tarball (over HTTP or from an S3 mirror),
// checks its MD5 digest before anything is compiled, unpacks one source tree
// per precision and runs configure, make and make install for the double and
// single precision libraries concurrently. The result is a prefix per
// precision plus a cgo.env file holding the CGO_CFLAGS and CGO_LDFLAGS the
// fftw build tag expects, as single-quoted assignments a POSIX shell can
// source with "set -a; . cgo.env; set +a".
//
// Cross builds map GOOS/GOARCH/GOARM to an autotools host triple through a
// fixed table. Unknown targets fail with [ErrUnsupportedTarget]; there is no
// prebuilt-library fallback, Windows included.
package fftwbuild

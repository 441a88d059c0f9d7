//go:build fftw && cgo

package fftw

import _ "github.com/cwbudde/algo-fftw/plan/fftwbackend"

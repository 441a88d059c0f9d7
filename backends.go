package fftw

// The pure-Go backend is always registered.
import _ "github.com/cwbudde/algo-fftw/plan/gobackend"

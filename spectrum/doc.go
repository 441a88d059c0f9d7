// Package spectrum turns transform coefficients into magnitude, power, level
// and phase values.
//
// The helpers work on []complex128; [Of] widens the coefficients of a
// single-precision pair. [Analyzer] wraps a one-dimensional pair with a
// tapering [Window] and returns calibrated single-sided amplitudes, and
// [Centroid], [Flatness] and [Rolloff] summarise a magnitude spectrum.
//
// Building with the fastmath tag switches the decibel conversions to a fast
// logarithm approximation.
package spectrum

//go:build fastmath

package spectrum

import "github.com/meko-christian/algo-approx"

// ln10 converts natural logarithms to base 10.
const ln10 = 2.302585092994045684017991454684

// log10 computes log10(x) using a fast natural log approximation.
func log10(x float64) float64 {
	return approx.FastLog(x) / ln10
}

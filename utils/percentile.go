// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Percentile returns the p-th percentile (0 <= p <= 100) of an ascending
// sorted slice using linear interpolation between order statistics
// (Hyndman & Fan type 7, the numpy default): h = (n-1)*p/100.
// It returns NaN for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	p = math.Max(0, math.Min(100, p))
	h := float64(n-1) * p / 100
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// AmplitudeToDB converts a linear amplitude to decibels relative to full scale.
// Zero maps to -Inf; callers decide how to represent that.
func AmplitudeToDB(a float64) float64 {
	return 20 * math.Log10(a)
}

// PowerToDB converts a linear power (mean square) to decibels.
func PowerToDB(p float64) float64 {
	return 10 * math.Log10(p)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

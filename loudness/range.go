// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"slices"

	"github.com/ik5/audmeter/level"
	"github.com/ik5/audmeter/utils"
)

const (
	// RangeLowPercentile and RangeHighPercentile bound the loudness range.
	RangeLowPercentile  = 10
	RangeHighPercentile = 95
)

// Range reduces a short-term loudness sequence to its loudness range (LU) and
// its maximum (LUFS). An empty sequence yields Unavailable for both.
func Range(shortTerm []float64) (lra, maximum level.Value) {
	if len(shortTerm) == 0 {
		return level.Unavailable, level.Unavailable
	}

	sorted := slices.Clone(shortTerm)
	slices.Sort(sorted)

	lra = level.Of(utils.Percentile(sorted, RangeHighPercentile) - utils.Percentile(sorted, RangeLowPercentile))
	maximum = level.Of(sorted[len(sorted)-1])

	return lra, maximum
}

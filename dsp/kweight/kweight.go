// SPDX-License-Identifier: EPL-2.0

// Package kweight implements the ITU-R BS.1770 K-weighting pre-filter.
//
// K-weighting is a high-frequency shelf (modelling the acoustic effect of the
// head) followed by the RLB high-pass. Both stages are derived analytically
// from the analog prototypes for the requested sample rate, so any rate from
// 8 kHz upward is supported; at 48 kHz the coefficients match the tables
// published in the recommendation.
package kweight

import (
	"math"

	"github.com/ik5/audmeter/dsp/iir"
)

// Analog prototype parameters of the two stages.
const (
	shelfFreq   = 1681.974450955533
	shelfGainDB = 3.999843853973347
	shelfQ      = 0.7071752369554196
	// Exponent that places the shelf midpoint for the band gain Vb
	shelfBandExp = 0.4996667741545416

	highpassFreq = 38.13547087602444
	highpassQ    = 0.5003270373238773
)

// Shelf returns the first stage (high shelf) for sampleRate.
func Shelf(sampleRate int) iir.Section {
	k := math.Tan(math.Pi * shelfFreq / float64(sampleRate))
	vh := math.Pow(10, shelfGainDB/20)
	vb := math.Pow(vh, shelfBandExp)

	a0 := 1 + k/shelfQ + k*k

	return iir.Section{
		B0: (vh + vb*k/shelfQ + k*k) / a0,
		B1: 2 * (k*k - vh) / a0,
		B2: (vh - vb*k/shelfQ + k*k) / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/shelfQ + k*k) / a0,
	}
}

// Highpass returns the second stage (RLB high-pass) for sampleRate.
// The numerator is fixed at {1, -2, 1} as in the recommendation.
func Highpass(sampleRate int) iir.Section {
	k := math.Tan(math.Pi * highpassFreq / float64(sampleRate))
	a0 := 1 + k/highpassQ + k*k

	return iir.Section{
		B0: 1,
		B1: -2,
		B2: 1,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/highpassQ + k*k) / a0,
	}
}

// Filter returns both stages as a cascade.
func Filter(sampleRate int) iir.Cascade {
	return iir.Cascade{Shelf(sampleRate), Highpass(sampleRate)}
}

// Apply K-weights one channel and returns the filtered copy.
func Apply(x []float64, sampleRate int) []float64 {
	return Filter(sampleRate).Apply(x)
}

// SPDX-License-Identifier: EPL-2.0

// Package multiband splits a signal into low, mid and high bands with
// Butterworth filters and reports the loudest block RMS of each band.
//
// The low band is a low-pass at the low/mid crossover, the mid band a
// band-pass between the two crossovers and the high band a high-pass at the
// mid/high crossover. Every band filter runs on the original channel, so the
// bands overlap at the crossovers rather than summing back to the input.
package multiband

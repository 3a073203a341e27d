// SPDX-License-Identifier: EPL-2.0

// Package iir implements causal IIR filtering with cascaded second-order
// sections, and digital Butterworth design.
//
// # Filtering
//
// A Cascade is applied sample by sample in transposed direct form II with a
// zero initial state, the same result as a direct-form lfilter over the
// product transfer function but without its loss of precision at high orders:
//
//	lp, err := iir.Butterworth(iir.Lowpass, 5, 48000, 250)
//	if err != nil {
//	    // cutoff outside (0, nyquist)
//	}
//	low := lp.Apply(channel)
//
// # Design
//
// Butterworth filters are designed from the analog prototype, frequency
// transformed (low-pass, high-pass or band-pass), pre-warped and mapped with the
// bilinear transform. Poles and zeros are then grouped into sections. A
// band-pass of order N has 2N poles.
package iir

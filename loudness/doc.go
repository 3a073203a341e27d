// SPDX-License-Identifier: EPL-2.0

// Package loudness measures programme loudness as described in ITU-R BS.1770
// and EBU R128.
//
// # Integrated Loudness
//
// Integrated computes LUFS-I over a whole buffer: every channel is K-weighted,
// mean-square power is taken over 400 ms blocks overlapping by 75%, blocks
// quieter than -70 LUFS are dropped, then blocks more than 10 LU below the
// mean of the remainder are dropped, and the mean power of what is left is
// reported:
//
//	lufs := loudness.Integrated(buf)
//	if v, ok := lufs.DB(); ok {
//	    fmt.Printf("%.1f LUFS\n", v)
//	}
//
// A buffer shorter than one block, or one where every block is gated out
// (digital silence), is level.Unavailable.
//
// # Short-Term Loudness and Range
//
// Windowed slides a window (3 s for short-term loudness) across the buffer and
// measures each position with the same gated algorithm. Positions that gate
// to nothing are left out of the sequence rather than reported as a sentinel.
// Range reduces the sequence to the loudness range (95th minus 10th
// percentile) and the maximum short-term loudness:
//
//	st := loudness.Windowed(buf, 3.0, 1.0)
//	lra, stMax := loudness.Range(st)
package loudness

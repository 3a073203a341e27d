// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"github.com/ik5/audmeter/audio"
)

const (
	// ShortTermSeconds is the short-term (LUFS-S) window length.
	ShortTermSeconds = 3.0
)

// Windowed measures Integrated loudness over windows of windowSeconds taken
// every hopSeconds, starting at the first frame. Only windows that fit
// entirely inside buf are measured, and windows that gate to nothing are
// omitted, so every returned value is finite.
func Windowed(buf *audio.Buffer, windowSeconds, hopSeconds float64) []float64 {
	rate := float64(buf.SampleRate)
	window := int(windowSeconds * rate)
	hop := int(hopSeconds * rate)
	if window <= 0 || hop <= 0 {
		return nil
	}

	var out []float64
	for start := 0; start+window <= buf.Frames(); start += hop {
		if v, ok := Integrated(buf.Slice(start, start+window)).DB(); ok {
			out = append(out, v)
		}
	}

	return out
}

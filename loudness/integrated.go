// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"math"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/dsp/kweight"
	"github.com/ik5/audmeter/level"
	"github.com/ik5/audmeter/utils"
)

const (
	// BlockSeconds is the gating block length.
	BlockSeconds = 0.4
	// BlockOverlap is the fraction by which consecutive gating blocks overlap.
	BlockOverlap = 0.75
	// AbsoluteGate drops blocks below this loudness (LUFS).
	AbsoluteGate = -70.0
	// RelativeGate drops blocks this far below the absolute-gated mean (LU).
	RelativeGate = -10.0

	// offset of the loudness formula, cancels the K-weighting gain at 1 kHz
	loudnessOffset = -0.691
)

// ChannelWeight is the BS.1770 weighting G for channel index ch.
// Front channels weigh 1.0; indices 3 and 4 (the surround pair of a
// five channel layout) weigh 1.41.
func ChannelWeight(ch int) float64 {
	if ch == 3 || ch == 4 {
		return 1.41
	}
	return 1.0
}

func blockLoudness(power float64) float64 {
	return loudnessOffset + utils.PowerToDB(power)
}

// Integrated returns the gated integrated loudness of buf in LUFS.
func Integrated(buf *audio.Buffer) level.Value {
	channels := buf.Channels()
	rate := float64(buf.SampleRate)
	frames := buf.Frames()
	if channels == 0 || rate <= 0 || float64(frames) < BlockSeconds*rate {
		return level.Unavailable
	}

	step := 1 - BlockOverlap
	duration := float64(frames) / rate
	numBlocks := int(math.RoundToEven((duration-BlockSeconds)/(BlockSeconds*step))) + 1
	norm := 1 / (BlockSeconds * rate)

	// z[c][j] is the mean square of channel c over block j
	z := make([][]float64, channels)
	for c := range channels {
		filtered := kweight.Apply(buf.Channel(c), buf.SampleRate)
		z[c] = make([]float64, numBlocks)
		for j := range numBlocks {
			lo := int(BlockSeconds * (float64(j) * step) * rate)
			hi := min(int(BlockSeconds*(float64(j)*step+1)*rate), frames)

			var sum float64
			for _, v := range filtered[lo:hi] {
				sum += v * v
			}
			z[c][j] = norm * sum
		}
	}

	weighted := func(j int) float64 {
		var p float64
		for c := range channels {
			p += ChannelWeight(c) * z[c][j]
		}
		return p
	}

	blocks := make([]float64, numBlocks)
	for j := range blocks {
		blocks[j] = blockLoudness(weighted(j))
	}

	meanPower := func(keep func(j int) bool) (float64, bool) {
		var total float64
		count := 0
		for j := range numBlocks {
			if keep(j) {
				total += weighted(j)
				count++
			}
		}
		if count == 0 {
			return 0, false
		}
		return total / float64(count), true
	}

	absolute := func(j int) bool { return blocks[j] >= AbsoluteGate }

	ungated, ok := meanPower(absolute)
	if !ok {
		return level.Unavailable
	}
	relative := blockLoudness(ungated) + RelativeGate

	gated, ok := meanPower(func(j int) bool { return absolute(j) && blocks[j] > relative })
	if !ok {
		return level.Unavailable
	}

	return level.Of(blockLoudness(gated))
}

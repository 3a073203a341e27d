// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/rand/v2"
)

// Planar signal generators. They return channel data in the layout of
// audio.Buffer.Data so tests can build buffers without going through a Source.

// Amplitude converts a dBFS level to a linear peak amplitude.
func Amplitude(dbfs float64) float64 {
	return math.Pow(10, dbfs/20)
}

// Frames returns the frame count of seconds at sampleRate.
func Frames(sampleRate int, seconds float64) int {
	return int(math.Round(seconds * float64(sampleRate)))
}

// Sine returns frames samples of a sine at freq Hz with peak amplitude amp.
// The phase starts at zero.
func Sine(sampleRate, frames int, freq, amp float64) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// Constant returns frames copies of v.
func Constant(frames int, v float64) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = v
	}
	return out
}

// Silence returns frames zero samples.
func Silence(frames int) []float64 {
	return make([]float64, frames)
}

// Noise returns uniformly distributed noise in [-amp, amp). The same seed
// always yields the same samples.
func Noise(frames int, amp float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, frames)
	for i := range out {
		out[i] = amp * (2*rng.Float64() - 1)
	}
	return out
}

// Concat joins signals end to end.
func Concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Scale returns x multiplied by gain.
func Scale(x []float64, gain float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * gain
	}
	return out
}

// Replicate returns channels independent copies of x.
func Replicate(channels int, x []float64) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = append([]float64(nil), x...)
	}
	return out
}

// SPDX-License-Identifier: EPL-2.0

package loudness_test

import (
	"fmt"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/internal/audiotest"
	"github.com/ik5/audmeter/loudness"
)

// Example measures a 1 kHz tone at -20 dBFS, the classic calibration signal.
func Example() {
	tone := audiotest.Sine(48000, 10*48000, 1000, audiotest.Amplitude(-20))
	buf := &audio.Buffer{SampleRate: 48000, Data: [][]float64{tone}}

	integrated := loudness.Integrated(buf)
	lra, stMax := loudness.Range(loudness.Windowed(buf, loudness.ShortTermSeconds, 1))

	fmt.Println("LUFS-I:", integrated)
	fmt.Println("LUFS-S max:", stMax)
	fmt.Println("LRA:", lra)
	// Output:
	// LUFS-I: -23.0
	// LUFS-S max: -23.0
	// LRA: 0.0
}

// SPDX-License-Identifier: EPL-2.0

package multiband_test

import (
	"fmt"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/internal/audiotest"
	"github.com/ik5/audmeter/multiband"
)

func ExampleAnalyze() {
	const rate = 48000
	tone := audiotest.Sine(rate, 5*rate, 1000, audiotest.Amplitude(-3))
	buf := &audio.Buffer{SampleRate: rate, Data: [][]float64{tone}}

	bands, err := multiband.Analyze(buf, multiband.DefaultConfig())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("mid:", bands.Mid)
	// Output:
	// mid: -6.0
}

// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audmeter/audio"
)

// Example_readAll decodes a stream into memory and oversamples it.
func Example_readAll() {
	buf := audio.NewBuffer(48000, 2, 48000)
	fmt.Println(buf.Channels(), buf.Frames(), buf.Duration())

	over, err := audio.NewOversampler(buf.Source(), 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	up, err := audio.ReadAll(over)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(up.SampleRate, up.Frames())
	// Output:
	// 2 48000 1s
	// 192000 192080
}

// Example_registry looks up decoders by file extension.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", nil)
	registry.Register(".FLAC", nil)

	_, ok := registry.Get(".Wav")
	fmt.Println(ok, registry.Formats())
	// Output: true [flac wav]
}

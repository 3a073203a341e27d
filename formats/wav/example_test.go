// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"os"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/formats/wav"
	"github.com/ik5/audmeter/internal/audiotest"
)

// Example_decoding decodes a WAV file into an in-memory buffer.
func Example_decoding() {
	f, err := os.CreateTemp("", "tone-*.wav")
	if err != nil {
		fmt.Println("create:", err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	tone := audiotest.Sine(48000, 4800, 1000, 0.5)
	if err := audiotest.WriteWAV(f, 48000, 24, [][]float64{tone, tone}); err != nil {
		fmt.Println("write:", err)
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		fmt.Println("seek:", err)
		return
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println("decode:", err)
		return
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		fmt.Println("read:", err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %d frames, %s\n",
		buf.SampleRate, buf.Channels(), buf.Frames(), audio.SourceBitDepth(src))
	// Output:
	// 48000 Hz, 2 channels, 4800 frames, 24 bit
}

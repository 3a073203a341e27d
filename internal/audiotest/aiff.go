// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// quantize converts planar samples to interleaved signed integers of
// bitDepth bits, clipping to full scale.
func quantize(bitDepth int, data [][]float64) []int {
	channels := len(data)
	frames := len(data[0])
	full := math.Ldexp(1, bitDepth-1)

	ints := make([]int, frames*channels)
	for f := range frames {
		for c := range channels {
			v := math.Max(-1, math.Min(1, data[c][f]))
			ints[f*channels+c] = int(math.Max(-full, math.Min(full-1, math.Round(v*full))))
		}
	}

	return ints
}

// WriteAIFF encodes planar data as big-endian AIFF with the given bit
// depth (8, 16, 24 or 32).
func WriteAIFF(w io.WriteSeeker, sampleRate, bitDepth int, data [][]float64) error {
	channels := len(data)
	if channels == 0 {
		return fmt.Errorf("no channels")
	}

	enc := aiff.NewEncoder(w, sampleRate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           quantize(bitDepth, data),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding aiff: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing aiff: %w", err)
	}

	return nil
}

// AIFFBytes returns the encoded bytes of an AIFF fixture.
func AIFFBytes(tb testing.TB, sampleRate, bitDepth int, data [][]float64) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.aiff")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating fixture: %v", err)
	}

	if err := WriteAIFF(f, sampleRate, bitDepth, data); err != nil {
		f.Close()
		tb.Fatalf("writing fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		tb.Fatalf("closing fixture: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("reading fixture: %v", err)
	}

	return b
}

// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes planar data as integer PCM WAV with the given bit depth
// (16, 24 or 32). Samples are clipped to [-1, 1].
func WriteWAV(w io.WriteSeeker, sampleRate, bitDepth int, data [][]float64) error {
	channels := len(data)
	if channels == 0 {
		return fmt.Errorf("no channels")
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           quantize(bitDepth, data),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// TempWAV writes a WAV fixture named name into a per-test directory and
// returns its path.
func TempWAV(tb testing.TB, name string, sampleRate, bitDepth int, data [][]float64) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	if err := WriteWAV(f, sampleRate, bitDepth, data); err != nil {
		tb.Fatalf("writing fixture: %v", err)
	}

	return path
}

// WAVBytes returns the encoded bytes of a WAV fixture.
func WAVBytes(tb testing.TB, sampleRate, bitDepth int, data [][]float64) []byte {
	tb.Helper()

	b, err := os.ReadFile(TempWAV(tb, "fixture.wav", sampleRate, bitDepth, data))
	if err != nil {
		tb.Fatalf("reading fixture: %v", err)
	}

	return b
}

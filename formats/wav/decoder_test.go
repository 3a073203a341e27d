// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/internal/audiotest"
)

// createFloatWAVFile builds a canonical 44-byte header WAV holding IEEE
// float32 samples.
func createFloatWAVFile(sampleRate, channels int, samples []float32) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(32)
	byteRate := uint32(sampleRate) * uint32(numChannels) * 4
	blockAlign := numChannels * 4
	dataSize := uint32(len(samples) * 4)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(formatIEEEFloat))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func decodeAll(t *testing.T, data []byte) (*audio.Buffer, audio.BitDepth) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	return buf, audio.SourceBitDepth(src)
}

func TestDecoder_IntegerPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		channels int
	}{
		{"16-bit mono", 16, 1},
		{"16-bit stereo", 16, 2},
		{"24-bit stereo", 24, 2},
		{"32-bit mono", 32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := audiotest.Replicate(tt.channels, audiotest.Sine(8000, 800, 440, 0.5))
			buf, depth := decodeAll(t, audiotest.WAVBytes(t, 8000, tt.bitDepth, want))

			if buf.SampleRate != 8000 {
				t.Errorf("SampleRate = %d, want 8000", buf.SampleRate)
			}
			if buf.Channels() != tt.channels {
				t.Fatalf("Channels() = %d, want %d", buf.Channels(), tt.channels)
			}
			if buf.Frames() != 800 {
				t.Fatalf("Frames() = %d, want 800", buf.Frames())
			}
			if depth != (audio.BitDepth{Bits: tt.bitDepth}) {
				t.Errorf("BitDepth = %v, want %d bit", depth, tt.bitDepth)
			}

			// Samples pass through float32, which caps the precision of
			// 32-bit input.
			tol := max(2/math.Ldexp(1, tt.bitDepth-1), 1e-7)
			for c := range tt.channels {
				for i, v := range buf.Channel(c) {
					if math.Abs(v-want[c][i]) > tol {
						t.Fatalf("channel %d sample %d = %v, want %v", c, i, v, want[c][i])
					}
				}
			}
		})
	}
}

func TestDecoder_FloatPCM(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.25, -0.25, 0.5, -1, 1}
	buf, depth := decodeAll(t, createFloatWAVFile(44100, 2, samples))

	if depth.String() != "32 bit-f" {
		t.Errorf("BitDepth = %q, want %q", depth, "32 bit-f")
	}
	if buf.Frames() != 3 || buf.Channels() != 2 {
		t.Fatalf("got %d frames x %d channels, want 3 x 2", buf.Frames(), buf.Channels())
	}

	for f := range 3 {
		for c := range 2 {
			if got, want := buf.Data[c][f], float64(samples[f*2+c]); got != want {
				t.Errorf("frame %d channel %d = %v, want %v", f, c, got, want)
			}
		}
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := audiotest.WAVBytes(t, 16000, 16, [][]float64{audiotest.Constant(100, 0.25)})

	// MultiReader hides the Seek method of bytes.Reader
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", buf.Frames())
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not a riff container at all, just text")},
		{"wrong form type", append([]byte("RIFF\x24\x00\x00\x00AVI "), make([]byte, 32)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestIntScaler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		in       int
		want     float32
	}{
		{8, 128, 0},
		{8, 0, -1},
		{8, 192, 0.5},
		{16, -32768, -1},
		{16, 16384, 0.5},
		{24, -8388608, -1},
		{24, 4194304, 0.5},
		{32, -2147483648, -1},
	}

	for _, tt := range tests {
		if got := intScaler(tt.bitDepth)(tt.in); got != tt.want {
			t.Errorf("intScaler(%d)(%d) = %v, want %v", tt.bitDepth, tt.in, got, tt.want)
		}
	}
}

// SPDX-License-Identifier: EPL-2.0

package probe

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/formats/wav"
	"github.com/ik5/audmeter/internal/audiotest"
)

func wavRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	return r
}

func stereoTone(rate int, seconds float64) [][]float64 {
	x := audiotest.Sine(rate, audiotest.Frames(rate, seconds), 440, 0.5)
	return audiotest.Replicate(2, x)
}

func pad(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	oggVorbis := pad([]byte("OggS\x00"), 64)
	copy(oggVorbis[28:], "\x01vorbis")

	tests := []struct {
		name     string
		data     []byte
		filename string
		want     string
	}{
		{"wav content", pad([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), 64), "", "wav"},
		{"aiff content", pad([]byte("FORM\x00\x00\x00\x00AIFFCOMM"), 64), "", "aiff"},
		{"flac content", pad([]byte("fLaC\x00\x00\x00\x22"), 64), "", "flac"},
		{"mp3 with id3 tag", pad([]byte("ID3\x04"), 64), "", "mp3"},
		{"ogg vorbis", oggVorbis, "", "ogg"},
		{"content wins over extension", pad([]byte("fLaC\x00\x00\x00\x22"), 64), "song.wav", "flac"},
		{"extension fallback", []byte("????"), "Take.AIF", "aif"},
		{"nothing recognised", []byte("plain text"), "notes", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectFormat(tt.data, tt.filename); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_WAV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		filename   string
		bits       int
		wantFormat string
		wantDepth  string
	}{
		{"named 16 bit", "take1.wav", 16, "WAV", "16 bit"},
		{"named 24 bit", "mix.WAV", 24, "WAV", "24 bit"},
		{"sniffed without extension", "upload", 16, "WAV", "16 bit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := audiotest.WAVBytes(t, 44100, tt.bits, stereoTone(44100, 1))

			res, err := Reader(wavRegistry(), tt.filename, bytes.NewReader(data), 0)
			if err != nil {
				t.Fatalf("Reader() error = %v", err)
			}

			info := res.Info
			if info.Filename != tt.filename {
				t.Errorf("Filename = %q, want %q", info.Filename, tt.filename)
			}
			if info.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", info.Format, tt.wantFormat)
			}
			if info.SampleRate != 44100 || info.Channels != 2 {
				t.Errorf("SampleRate, Channels = %d, %d, want 44100, 2", info.SampleRate, info.Channels)
			}
			if got := info.BitDepth.String(); got != tt.wantDepth {
				t.Errorf("BitDepth = %q, want %q", got, tt.wantDepth)
			}
			if info.Duration != time.Second {
				t.Errorf("Duration = %v, want 1s", info.Duration)
			}
			if info.Size != int64(len(data)) {
				t.Errorf("Size = %d, want %d", info.Size, len(data))
			}
			if res.Buffer.Frames() != 44100 {
				t.Errorf("Frames() = %d, want 44100", res.Buffer.Frames())
			}
		})
	}
}

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     []error
	}{
		{
			name:     "unknown container",
			filename: "notes.txt",
			data:     []byte("not audio at all"),
			want:     []error{ErrDecodeFailure, ErrUnsupportedFormat},
		},
		{
			name:     "no decoder registered",
			filename: "a.flac",
			data:     pad([]byte("fLaC\x00\x00\x00\x22"), 64),
			want:     []error{ErrDecodeFailure, ErrUnsupportedFormat},
		},
		{
			name:     "corrupt wav",
			filename: "bad.wav",
			data:     []byte("RIFF\x00\x00\x00\x00WAVEjunk"),
			want:     []error{ErrDecodeFailure, wav.ErrNotWavFile},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Reader(wavRegistry(), tt.filename, bytes.NewReader(tt.data), 0)
			if res != nil {
				t.Errorf("Reader() result = %+v, want nil", res)
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Reader() error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestFile(t *testing.T) {
	t.Parallel()

	path := audiotest.TempWAV(t, "session.wav", 48000, 16, stereoTone(48000, 0.5))

	res, err := File(wavRegistry(), path, "")
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if res.Info.Filename != filepath.Base(path) {
		t.Errorf("Filename = %q, want %q", res.Info.Filename, filepath.Base(path))
	}
	if res.Info.Size <= 0 {
		t.Errorf("Size = %d, want the file size", res.Info.Size)
	}

	res, err = File(wavRegistry(), path, "Display Name.wav")
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if res.Info.Filename != "Display Name.wav" {
		t.Errorf("Filename = %q, want the display name", res.Info.Filename)
	}

	if _, err := File(wavRegistry(), filepath.Join(t.TempDir(), "missing.wav"), ""); !errors.Is(err, ErrDecodeFailure) {
		t.Errorf("File() missing error = %v, want ErrDecodeFailure", err)
	}
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	res, err := Buffer("capture", &audio.Buffer{SampleRate: 22050, Data: [][]float64{make([]float64, 22050*2)}})
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	if res.Info.Format != "PCM" || res.Info.Channels != 1 || res.Info.Duration != 2*time.Second {
		t.Errorf("Info = %+v", res.Info)
	}
	if got := res.Info.BitDepth.String(); got != "N/A" {
		t.Errorf("BitDepth = %q, want N/A", got)
	}

	empty := []*audio.Buffer{
		nil,
		{SampleRate: 48000},
		{SampleRate: 48000, Data: [][]float64{{}, {}}},
	}
	for i, buf := range empty {
		if _, err := Buffer("empty", buf); !errors.Is(err, ErrEmptyBuffer) {
			t.Errorf("case %d: Buffer() error = %v, want ErrEmptyBuffer", i, err)
		}
	}

	ragged := &audio.Buffer{SampleRate: 48000, Data: [][]float64{{1, 2}, {1}}}
	if _, err := Buffer("ragged", ragged); !errors.Is(err, audio.ErrRaggedBuffer) {
		t.Errorf("Buffer() ragged error = %v, want ErrRaggedBuffer", err)
	}
}

func TestFileInfo_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		info                     FileInfo
		wantRate, wantDur, wantSz string
	}{
		{
			name:     "cd audio",
			info:     FileInfo{SampleRate: 44100, Duration: 75 * time.Second, Size: 1_234_567},
			wantRate: "44,100 Hz", wantDur: "01:15", wantSz: "1.2 MB",
		},
		{
			name:     "long hi-res",
			info:     FileInfo{SampleRate: 192000, Duration: 3725*time.Second + 900*time.Millisecond, Size: 2_000_000_000},
			wantRate: "192,000 Hz", wantDur: "01:02:05", wantSz: "2000 MB",
		},
		{
			name:     "whole megabytes",
			info:     FileInfo{SampleRate: 22050, Duration: 59 * time.Second, Size: 3_000_400},
			wantRate: "22,050 Hz", wantDur: "00:59", wantSz: "3 MB",
		},
		{
			name:     "under a megabyte",
			info:     FileInfo{SampleRate: 16000, Duration: time.Second, Size: 420_000},
			wantRate: "16,000 Hz", wantDur: "00:01", wantSz: "0.4 MB",
		},
		{
			name:     "unknown size",
			info:     FileInfo{SampleRate: 8000, Duration: 500 * time.Millisecond},
			wantRate: "8,000 Hz", wantDur: "00:00", wantSz: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.info.SampleRateString(); got != tt.wantRate {
				t.Errorf("SampleRateString() = %q, want %q", got, tt.wantRate)
			}
			if got := tt.info.DurationString(); got != tt.wantDur {
				t.Errorf("DurationString() = %q, want %q", got, tt.wantDur)
			}
			if got := tt.info.SizeString(); got != tt.wantSz {
				t.Errorf("SizeString() = %q, want %q", got, tt.wantSz)
			}
		})
	}
}

func TestFileInfo_MarshalJSON(t *testing.T) {
	t.Parallel()

	info := FileInfo{
		Filename:   "a.wav",
		Format:     "WAV",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   audio.BitDepth{Bits: 32, Float: true},
		Duration:   1500 * time.Millisecond,
		Size:       1024,
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, want := range []string{
		`"filename":"a.wav"`,
		`"bit_depth":"32 bit-f"`,
		`"duration_seconds":1.5`,
		`"size_bytes":1024`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() = %s, missing %s", data, want)
		}
	}
}

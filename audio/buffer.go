// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded PCM signal held in memory.
//
// Data is channel-major: Data[c][i] is frame i of channel c. A Buffer is
// treated as immutable once it has been produced; analysis code only reads it,
// and Slice shares the underlying storage.
type Buffer struct {
	SampleRate int
	Data       [][]float64
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, frames)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

func (b *Buffer) Channel(c int) []float64 { return b.Data[c] }

// Duration is Frames / SampleRate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// Validate reports whether the buffer is well formed. An empty buffer is valid.
func (b *Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if len(b.Data) == 0 {
		return ErrInvalidChannels
	}

	frames := len(b.Data[0])
	for c := 1; c < len(b.Data); c++ {
		if len(b.Data[c]) != frames {
			return fmt.Errorf("channel %d has %d frames, channel 0 has %d: %w",
				c, len(b.Data[c]), frames, ErrRaggedBuffer)
		}
	}

	return nil
}

// Slice returns a view of frames [start, end) sharing storage with b.
// Bounds are clamped to the buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	frames := b.Frames()
	start = max(0, min(start, frames))
	end = max(start, min(end, frames))

	data := make([][]float64, len(b.Data))
	for c := range b.Data {
		data[c] = b.Data[c][start:end]
	}

	return &Buffer{SampleRate: b.SampleRate, Data: data}
}

// Source exposes the buffer as an interleaved float32 stream.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.buf.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = float32(s.buf.Data[c][s.pos+f])
		}
	}
	s.pos += frames

	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}

// maxEmptyReads bounds consecutive (0, nil) reads before ReadAll gives up.
const maxEmptyReads = 64

// ReadAll drains src into a Buffer, de-interleaving the channels.
// It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	// Keep reads frame aligned
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}

	out := &Buffer{SampleRate: src.SampleRate(), Data: make([][]float64, channels)}
	buf := make([]float32, bufSize)
	// Carries a partial frame across reads; some decoders return sample
	// counts that are not frame aligned.
	var carry []float32
	emptyReads := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples := buf[:n]
			if len(carry) > 0 {
				samples = append(carry, samples...)
				carry = nil
			}

			frames := len(samples) / channels
			for f := range frames {
				base := f * channels
				for c := range channels {
					out.Data[c] = append(out.Data[c], float64(samples[base+c]))
				}
			}

			if rest := len(samples) - frames*channels; rest > 0 {
				carry = append([]float32(nil), samples[frames*channels:]...)
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n > 0 {
			emptyReads = 0
		} else if emptyReads++; emptyReads > maxEmptyReads {
			return nil, ErrStalledSource
		}
	}

	return out, nil
}

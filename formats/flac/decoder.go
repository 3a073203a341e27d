// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/ik5/audmeter/audio"
)

// streamer is the subset of beep.StreamSeekCloser the source needs
type streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Close() error
}

// source adapts a beep streamer, which always yields stereo pairs, to an
// interleaved audio.Source with the file's real channel count.
type source struct {
	st         streamer
	sampleRate int
	channels   int
	bits       int
	pairs      [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return cap(s.pairs) * s.channels }

func (s *source) BitDepth() audio.BitDepth { return audio.BitDepth{Bits: s.bits} }

func (s *source) Close() error {
	if err := s.st.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.done {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}
	if cap(s.pairs) < frames {
		s.pairs = make([][2]float64, frames)
	}
	s.pairs = s.pairs[:frames]

	n, ok := s.st.Stream(s.pairs)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = float32(s.pairs[f][c])
		}
	}

	if !ok {
		s.done = true
		if err := s.st.Err(); err != nil {
			return n * s.channels, fmt.Errorf("decoding flac: %w", err)
		}
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}

	st, format, err := flac.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	return newSource(st, format)
}

func newSource(st streamer, format beep.Format) (*source, error) {
	if format.NumChannels < 1 || format.NumChannels > 2 {
		st.Close()
		return nil, fmt.Errorf("%d channels: %w", format.NumChannels, ErrUnsupportedChannels)
	}

	return &source{
		st:         st,
		sampleRate: int(format.SampleRate),
		channels:   format.NumChannels,
		bits:       format.Precision * 8,
		pairs:      make([][2]float64, 2048),
	}, nil
}

// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmeter/audio"
)

// go-mp3 always produces 16-bit little-endian stereo
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
	// odd trailing byte of the previous read
	carry []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample } // sample capacity, not bytes

// BitDepth is unknown for a lossy stream.
func (s *source) BitDepth() audio.BitDepth { return audio.BitDepth{} }

func (s *source) ReadSamples(dst []float32) (int, error) {
	bytesNeeded := len(dst)*bytesPerSample - len(s.carry)
	if bytesNeeded <= 0 {
		return 0, nil
	}
	if cap(s.buf) < len(dst)*bytesPerSample {
		s.buf = make([]byte, len(dst)*bytesPerSample)
	}
	s.buf = s.buf[:len(s.carry)+bytesNeeded]
	copy(s.buf, s.carry)

	n, err := s.dec.Read(s.buf[len(s.carry):])
	n += len(s.carry)
	s.carry = s.carry[:0]
	if n < bytesPerSample {
		s.carry = append(s.carry, s.buf[:n]...)
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / bytesPerSample
	for i := range samples {
		val := int16(binary.LittleEndian.Uint16(s.buf[bytesPerSample*i:]))
		dst[i] = float32(val) / 32768.0
	}
	if rest := n - samples*bytesPerSample; rest > 0 {
		s.carry = append(s.carry, s.buf[n-rest:n]...)
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   outputChannels,
		buf:        make([]byte, 8192),
	}, nil
}

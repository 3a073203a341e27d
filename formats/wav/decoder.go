// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audmeter/audio"
)

// WAVE format tags.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// pcmReader is an interface for wav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source streams integer PCM through go-audio/wav.
type source struct {
	dec        pcmReader
	format     *goaudio.Format
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) BitDepth() audio.BitDepth { return audio.BitDepth{Bits: s.bitDepth} }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.format,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	// go-audio/wav reports the end of the data chunk as (0, nil)
	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	toFloat := intScaler(s.bitDepth)
	for i := range n {
		dst[i] = toFloat(s.intBuf.Data[i])
	}

	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// intScaler maps a go-audio/wav integer sample to [-1, 1).
// 8-bit WAV samples are unsigned with the midpoint at 128.
func intScaler(bitDepth int) func(int) float32 {
	if bitDepth == 8 {
		return func(v int) float32 { return float32(v-128) / 128.0 }
	}
	scale := float32(math.Ldexp(1, bitDepth-1))
	return func(v int) float32 { return float32(v) / scale }
}

// floatSource streams IEEE float samples straight from the data chunk;
// go-audio/wav only decodes integer PCM.
type floatSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	width      int
	buf        []byte
}

func (s *floatSource) SampleRate() int { return s.sampleRate }
func (s *floatSource) Channels() int   { return s.channels }
func (s *floatSource) Close() error    { return nil }
func (s *floatSource) BufSize() int    { return 4096 }

func (s *floatSource) BitDepth() audio.BitDepth {
	return audio.BitDepth{Bits: s.width * 8, Float: true}
}

func (s *floatSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * s.width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	samples := n / s.width

	for i := range samples {
		b := s.buf[i*s.width : (i+1)*s.width]
		if s.width == 8 {
			dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		} else {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
	}

	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("%w", err)
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	sampleRate := int(dec.SampleRate)
	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating data chunk: %w", err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavLayout
	}

	switch dec.WavAudioFormat {
	case formatIEEEFloat:
		if bitDepth != 32 && bitDepth != 64 {
			return nil, fmt.Errorf("%d-bit float: %w", bitDepth, ErrUnsupportedSampleFormat)
		}
		return &floatSource{
			r:          dec.PCMChunk.R,
			sampleRate: sampleRate,
			channels:   channels,
			width:      bitDepth / 8,
		}, nil

	case formatPCM, formatExtensible:
		switch bitDepth {
		case 8, 16, 24, 32:
		default:
			return nil, fmt.Errorf("%d-bit PCM: %w", bitDepth, ErrUnsupportedSampleFormat)
		}
		return &source{
			dec:        dec,
			format:     dec.Format(),
			sampleRate: sampleRate,
			channels:   channels,
			bitDepth:   bitDepth,
		}, nil

	default:
		return nil, fmt.Errorf("format tag %#x: %w", dec.WavAudioFormat, ErrUnsupportedSampleFormat)
	}
}

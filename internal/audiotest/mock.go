// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixtures shared by the package tests: scripted
// sources, planar signal generators and a WAV fixture writer.
//
// It does not import audio so that package audio's own tests can use it.
package audiotest

import (
	"io"
)

// MockSource generates interleaved samples on demand. It satisfies
// audio.Source and can be scripted to return short reads, stall or fail
// part way through.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	waveform   func(frame, channel int) float32

	chunk   int
	failAt  int
	failErr error
	stalled bool
	closed  bool
}

// NewMockSource creates a source of frames frames per channel whose samples
// come from waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
		failAt:     -1,
	}
}

// NewPlanarSource replays planar data as an interleaved stream.
func NewPlanarSource(sampleRate int, data [][]float64) *MockSource {
	frames := 0
	if len(data) > 0 {
		frames = len(data[0])
	}
	return NewMockSource(sampleRate, len(data), frames, func(frame, channel int) float32 {
		return float32(data[channel][frame])
	})
}

// NewConstantSource creates a source where every sample equals value.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// WithChunk limits every read to at most frames frames.
func (m *MockSource) WithChunk(frames int) *MockSource {
	m.chunk = frames
	return m
}

// FailAt makes the read that reaches frame return err.
func (m *MockSource) FailAt(frame int, err error) *MockSource {
	m.failAt = frame
	m.failErr = err
	return m
}

// Stall makes every read return (0, nil).
func (m *MockSource) Stall() *MockSource {
	m.stalled = true
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.stalled {
		return 0, nil
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.frames-m.pos)
	if m.chunk > 0 {
		frames = min(frames, m.chunk)
	}

	failing := m.failAt >= 0 && m.pos+frames >= m.failAt
	if failing {
		frames = max(0, m.failAt-m.pos)
	}

	for f := range frames {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.pos+f, c)
		}
	}
	m.pos += frames

	if failing {
		return frames * m.channels, m.failErr
	}
	if m.pos >= m.frames {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

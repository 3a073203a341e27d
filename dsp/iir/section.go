// SPDX-License-Identifier: EPL-2.0

package iir

import (
	"math"
	"math/cmplx"
)

// Section is a normalized biquad (a0 == 1):
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// A first-order section has B2 == A2 == 0.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// state is the transposed direct form II delay line.
type state struct {
	z1, z2 float64
}

func (s *state) process(c *Section, in float64) float64 {
	out := c.B0*in + s.z1
	s.z1 = c.B1*in - c.A1*out + s.z2
	s.z2 = c.B2*in - c.A2*out
	return out
}

// Response evaluates the section at normalized angular frequency w (radians per sample).
func (c Section) Response(w float64) complex128 {
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1
	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}

// Cascade is a chain of sections applied in order.
type Cascade []Section

// Apply filters x from a zero state and returns a new slice; x is not modified.
func (c Cascade) Apply(x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	c.ApplyInPlace(y)
	return y
}

// ApplyInPlace filters x from a zero state, overwriting it.
func (c Cascade) ApplyInPlace(x []float64) {
	for i := range c {
		sec := &c[i]
		var st state
		for n, v := range x {
			x[n] = st.process(sec, v)
		}
	}
}

// Response evaluates the cascade at freq Hz for the given sample rate.
func (c Cascade) Response(freq, sampleRate float64) complex128 {
	w := 2 * math.Pi * freq / sampleRate
	h := complex(1, 0)
	for _, sec := range c {
		h *= sec.Response(w)
	}
	return h
}

// MagnitudeDB is the cascade gain at freq Hz in dB.
func (c Cascade) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freq, sampleRate)))
}

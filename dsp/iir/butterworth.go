// SPDX-License-Identifier: EPL-2.0

package iir

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Kind selects the frequency transformation applied to the prototype.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
)

func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// imagEps separates real poles from complex ones after the transforms.
const imagEps = 1e-12

// zpk is a filter in zero/pole/gain form.
type zpk struct {
	z []complex128
	p []complex128
	k float64
}

// Butterworth designs a digital Butterworth filter of the given order.
// Lowpass and Highpass take one cutoff in Hz, Bandpass takes the lower and
// upper band edges.
func Butterworth(kind Kind, order int, sampleRate float64, cutoffs ...float64) (Cascade, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}

	want := 1
	if kind == Bandpass {
		want = 2
	}
	if len(cutoffs) != want {
		return nil, fmt.Errorf("%s needs %d cutoff(s), got %d: %w", kind, want, len(cutoffs), ErrInvalidCutoff)
	}

	nyquist := sampleRate / 2
	for _, f := range cutoffs {
		if !(f > 0 && f < nyquist) {
			return nil, fmt.Errorf("cutoff %g Hz at %g Hz sample rate: %w", f, sampleRate, ErrInvalidCutoff)
		}
	}

	// Pre-warp for the bilinear transform with fs = 2
	warp := func(f float64) float64 { return 4 * math.Tan(math.Pi*f/sampleRate) }

	proto := prototype(order)

	var analog zpk
	switch kind {
	case Lowpass:
		analog = proto.lowpass(warp(cutoffs[0]))
	case Highpass:
		analog = proto.highpass(warp(cutoffs[0]))
	case Bandpass:
		if cutoffs[0] >= cutoffs[1] {
			return nil, ErrBandOrder
		}
		lo, hi := warp(cutoffs[0]), warp(cutoffs[1])
		analog = proto.bandpass(math.Sqrt(lo*hi), hi-lo)
	default:
		return nil, ErrUnknownKind
	}

	return analog.bilinear().sections(), nil
}

// prototype is the normalized analog Butterworth low-pass: no zeros, poles on
// the left half of the unit circle.
func prototype(order int) zpk {
	p := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		p = append(p, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*order))))
	}
	return zpk{p: p, k: 1}
}

func (f zpk) degree() int { return len(f.p) - len(f.z) }

func (f zpk) lowpass(wo float64) zpk {
	p := make([]complex128, len(f.p))
	for i, v := range f.p {
		p[i] = v * complex(wo, 0)
	}
	return zpk{p: p, k: f.k * math.Pow(wo, float64(f.degree()))}
}

func (f zpk) highpass(wo float64) zpk {
	p := make([]complex128, len(f.p))
	prod := complex(1, 0)
	for i, v := range f.p {
		p[i] = complex(wo, 0) / v
		prod *= -v
	}
	// Prototype has no zeros, all of them move to the origin
	z := make([]complex128, f.degree())
	return zpk{z: z, p: p, k: f.k * real(1/prod)}
}

func (f zpk) bandpass(wo, bw float64) zpk {
	p := make([]complex128, 0, 2*len(f.p))
	wo2 := complex(wo*wo, 0)
	for _, v := range f.p {
		lp := v * complex(bw/2, 0)
		root := cmplx.Sqrt(lp*lp - wo2)
		p = append(p, lp+root, lp-root)
	}
	z := make([]complex128, f.degree())
	return zpk{z: z, p: p, k: f.k * math.Pow(bw, float64(f.degree()))}
}

// bilinear maps the analog filter to the z-plane with fs = 2.
func (f zpk) bilinear() zpk {
	const fs2 = 4

	num, den := complex(1, 0), complex(1, 0)
	z := make([]complex128, 0, len(f.p))
	for _, v := range f.z {
		z = append(z, (fs2+v)/(fs2-v))
		num *= fs2 - v
	}
	p := make([]complex128, len(f.p))
	for i, v := range f.p {
		p[i] = (fs2 + v) / (fs2 - v)
		den *= fs2 - v
	}
	// Zeros at infinity land on Nyquist
	for range f.degree() {
		z = append(z, -1)
	}

	return zpk{z: z, p: p, k: f.k * real(num/den)}
}

// sections groups conjugate pole pairs, then pairs of real poles, into
// biquads. A leftover real pole becomes a first-order section. Zeros are all
// real for the supported kinds and are handed out alternating from both ends
// of the sorted list so band-pass sections each get one zero at DC and one at
// Nyquist. The overall gain goes into the first section.
func (f zpk) sections() Cascade {
	var complexPoles []complex128
	var realPoles []float64
	for _, p := range f.p {
		switch {
		case imag(p) > imagEps:
			complexPoles = append(complexPoles, p)
		case imag(p) < -imagEps:
			// conjugate of a pole already collected
		default:
			realPoles = append(realPoles, real(p))
		}
	}
	sort.Float64s(realPoles)

	zeros := make([]float64, len(f.z))
	for i, z := range f.z {
		zeros[i] = real(z)
	}
	sort.Float64s(zeros)
	ordered := make([]float64, 0, len(zeros))
	for lo, hi := 0, len(zeros)-1; lo <= hi; lo, hi = lo+1, hi-1 {
		ordered = append(ordered, zeros[lo])
		if lo != hi {
			ordered = append(ordered, zeros[hi])
		}
	}
	next := func() (float64, bool) {
		if len(ordered) == 0 {
			return 0, false
		}
		z := ordered[0]
		ordered = ordered[1:]
		return z, true
	}
	numerator := func(count int) (b0, b1, b2 float64) {
		b0 = 1
		for range count {
			z, ok := next()
			if !ok {
				break
			}
			// multiply (b0 + b1 x + b2 x^2) by (1 - z x)
			b1, b2 = b1-z*b0, b2-z*b1
		}
		return b0, b1, b2
	}

	var out Cascade
	for _, p := range complexPoles {
		b0, b1, b2 := numerator(2)
		out = append(out, Section{
			B0: b0, B1: b1, B2: b2,
			A1: -2 * real(p),
			A2: real(p)*real(p) + imag(p)*imag(p),
		})
	}
	for i := 0; i+1 < len(realPoles); i += 2 {
		r1, r2 := realPoles[i], realPoles[i+1]
		b0, b1, b2 := numerator(2)
		out = append(out, Section{B0: b0, B1: b1, B2: b2, A1: -(r1 + r2), A2: r1 * r2})
	}
	if len(realPoles)%2 == 1 {
		r := realPoles[len(realPoles)-1]
		b0, b1, _ := numerator(1)
		out = append(out, Section{B0: b0, B1: b1, A1: -r})
	}

	if len(out) > 0 {
		out[0].B0 *= f.k
		out[0].B1 *= f.k
		out[0].B2 *= f.k
	}

	return out
}

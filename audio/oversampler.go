// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// Filter half length in input samples per unit of factor.
	oversampleHalfLen = 10
	// Kaiser window shape parameter.
	oversampleBeta = 5.0
)

// Oversampler streams src at factor times its sample rate using polyphase
// band-limited interpolation. Works on interleaved samples; preserves channel count.
//
// The interpolation filter is a Kaiser windowed sinc of 2*10*factor+1 taps with
// its cutoff at the Nyquist frequency of src. After src is exhausted the filter
// tail is flushed, so the output is slightly longer than factor*len(src).
type Oversampler struct {
	src      Source
	factor   int
	channels int

	// phases[p][k] is tap p+factor*k of the prototype filter
	phases [][]float64
	taps   int

	// Per-channel input history, most recent sample first
	history [][]float64

	srcBuf  []float32
	pending []float32
	flushed int
	eof     bool
}

func NewOversampler(src Source, factor int) (*Oversampler, error) {
	if factor < 1 {
		return nil, ErrInvalidFactor
	}

	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	phases := PolyphaseFilter(factor)
	taps := len(phases[0])

	o := &Oversampler{
		src:      src,
		factor:   factor,
		channels: channels,
		phases:   phases,
		taps:     taps,
		history:  make([][]float64, channels),
		srcBuf:   make([]float32, 1024*channels),
	}

	for c := range o.history {
		o.history[c] = make([]float64, taps)
	}

	return o, nil
}

func (o *Oversampler) SampleRate() int { return o.src.SampleRate() * o.factor }
func (o *Oversampler) Channels() int   { return o.channels }
func (o *Oversampler) BufSize() int    { return o.src.BufSize() * o.factor }
func (o *Oversampler) Factor() int     { return o.factor }

func (o *Oversampler) Close() error {
	err := o.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// push feeds one input frame and appends factor output frames to pending.
func (o *Oversampler) push(frame []float32) {
	for c := range o.channels {
		h := o.history[c]
		copy(h[1:], h[:o.taps-1])
		if frame == nil {
			h[0] = 0
		} else {
			h[0] = float64(frame[c])
		}
	}

	for p := range o.factor {
		for c := range o.channels {
			o.pending = append(o.pending, float32(floats.Dot(o.phases[p], o.history[c])))
		}
	}
}

// fill refills pending from src, or from the zero tail once src is done.
func (o *Oversampler) fill() error {
	if o.eof {
		if o.flushed >= o.taps-1 {
			return io.EOF
		}
		o.push(nil)
		o.flushed++
		return nil
	}

	n, err := o.src.ReadSamples(o.srcBuf)
	frames := n / o.channels
	for f := range frames {
		o.push(o.srcBuf[f*o.channels : (f+1)*o.channels])
	}

	if err == io.EOF {
		o.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples produces dst samples at factor times the source rate.
// dst length should be a multiple of the channel count.
func (o *Oversampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%o.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if len(o.pending) == 0 {
			if err := o.fill(); err != nil {
				if err == io.EOF && written > 0 {
					return written, io.EOF
				}
				return written, err
			}
			continue
		}

		n := copy(dst[written:], o.pending)
		o.pending = o.pending[n:]
		written += n
	}

	return written, nil
}

// PolyphaseFilter returns the interpolation filter for factor, split into
// factor phases of equal length. The taps of every phase sum to roughly one.
func PolyphaseFilter(factor int) [][]float64 {
	if factor == 1 {
		return [][]float64{{1}}
	}

	n := 2*oversampleHalfLen*factor + 1
	center := float64(n-1) / 2
	cutoff := 1 / float64(factor)

	proto := make([]float64, n)
	for i := range proto {
		x := float64(i) - center
		proto[i] = cutoff * sinc(cutoff*x) * kaiser(float64(i), float64(n), oversampleBeta)
	}
	// Unity gain at DC, then scale by factor to make up for the zero stuffing
	floats.Scale(float64(factor)/floats.Sum(proto), proto)

	taps := (n + factor - 1) / factor
	phases := make([][]float64, factor)
	for p := range phases {
		phases[p] = make([]float64, taps)
		for k := range taps {
			if i := p + factor*k; i < n {
				phases[p][k] = proto[i]
			}
		}
	}

	return phases
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func kaiser(i, n, beta float64) float64 {
	r := 2*i/(n-1) - 1
	return besselI0(beta*math.Sqrt(1-r*r)) / besselI0(beta)
}

// besselI0 is the zeroth order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	for k := 1; k <= 50; k++ {
		term *= (x * x) / (4 * float64(k) * float64(k))
		sum += term
		if term < 1e-12*sum {
			break
		}
	}
	return sum
}

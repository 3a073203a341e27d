// SPDX-License-Identifier: EPL-2.0

package multiband

import (
	"fmt"
	"math"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/dsp/iir"
	"github.com/ik5/audmeter/level"
	"github.com/ik5/audmeter/utils"
)

// Floor is reported for a band whose every block is digital silence.
const Floor = -100.0

// Config holds the filter bank parameters.
type Config struct {
	LowMidHz     float64
	MidHighHz    float64
	Order        int
	BlockSeconds float64
	StepSeconds  float64
}

// DefaultConfig returns crossovers at 250 Hz and 4 kHz, order 5 filters and
// 3 s blocks every second.
func DefaultConfig() Config {
	return Config{
		LowMidHz:     250,
		MidHighHz:    4000,
		Order:        5,
		BlockSeconds: 3,
		StepSeconds:  1,
	}
}

// Validate checks the parts of c that do not depend on a sample rate.
func (c Config) Validate() error {
	switch {
	case !(c.LowMidHz > 0):
		return fmt.Errorf("low/mid crossover %g Hz: %w", c.LowMidHz, ErrInvalidConfig)
	case !(c.MidHighHz > c.LowMidHz):
		return fmt.Errorf("mid/high crossover %g Hz not above low/mid %g Hz: %w",
			c.MidHighHz, c.LowMidHz, ErrInvalidConfig)
	case c.Order < 1:
		return fmt.Errorf("filter order %d: %w", c.Order, ErrInvalidConfig)
	case !(c.BlockSeconds > 0):
		return fmt.Errorf("block length %g s: %w", c.BlockSeconds, ErrInvalidConfig)
	case !(c.StepSeconds > 0):
		return fmt.Errorf("step %g s: %w", c.StepSeconds, ErrInvalidConfig)
	}
	return nil
}

// Bands is the loudest block RMS per band in dBFS.
type Bands struct {
	Low  level.Value `json:"low"`
	Mid  level.Value `json:"mid"`
	High level.Value `json:"high"`
}

// Unavailable is the result when the bank could not run at all.
var Unavailable = Bands{Low: level.Unavailable, Mid: level.Unavailable, High: level.Unavailable}

// Bank holds the three band filters designed for one sample rate.
type Bank struct {
	cfg  Config
	rate int

	low, mid, high iir.Cascade
}

// NewBank designs the filters for sampleRate. Crossovers at or above the
// Nyquist frequency give ErrCrossoverAboveNyquist.
func NewBank(cfg Config, sampleRate int) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidSampleRate
	}

	sr := float64(sampleRate)
	if nyquist := sr / 2; cfg.MidHighHz >= nyquist {
		return nil, fmt.Errorf("mid/high crossover %g Hz at %d Hz sample rate: %w",
			cfg.MidHighHz, sampleRate, ErrCrossoverAboveNyquist)
	}

	low, err := iir.Butterworth(iir.Lowpass, cfg.Order, sr, cfg.LowMidHz)
	if err != nil {
		return nil, fmt.Errorf("low band: %w", err)
	}
	mid, err := iir.Butterworth(iir.Bandpass, cfg.Order, sr, cfg.LowMidHz, cfg.MidHighHz)
	if err != nil {
		return nil, fmt.Errorf("mid band: %w", err)
	}
	high, err := iir.Butterworth(iir.Highpass, cfg.Order, sr, cfg.MidHighHz)
	if err != nil {
		return nil, fmt.Errorf("high band: %w", err)
	}

	return &Bank{cfg: cfg, rate: sampleRate, low: low, mid: mid, high: high}, nil
}

// Channel measures one channel.
func (b *Bank) Channel(x []float64) Bands {
	return Bands{
		Low:  b.peakRMS(b.low.Apply(x)),
		Mid:  b.peakRMS(b.mid.Apply(x)),
		High: b.peakRMS(b.high.Apply(x)),
	}
}

// peakRMS returns the largest block RMS of y in dBFS. Blocks start every step
// and run past the end of y as zeros. A silent block counts as Floor.
func (b *Bank) peakRMS(y []float64) level.Value {
	block := int(b.cfg.BlockSeconds * float64(b.rate))
	step := int(b.cfg.StepSeconds * float64(b.rate))
	if block <= 0 || step <= 0 || len(y) == 0 {
		return level.Of(Floor)
	}

	best := math.Inf(-1)
	for start := 0; start < len(y); start += step {
		end := min(start+block, len(y))

		var sum float64
		for _, v := range y[start:end] {
			sum += v * v
		}
		rms := math.Sqrt(sum / float64(block))

		db := Floor
		if rms > 0 {
			db = utils.AmplitudeToDB(rms)
		}
		best = max(best, db)
	}

	return level.Of(best)
}

// Analyze runs the bank over every channel of buf and keeps the maximum of
// each band across channels.
func Analyze(buf *audio.Buffer, cfg Config) (Bands, error) {
	if err := buf.Validate(); err != nil {
		return Unavailable, err
	}

	bank, err := NewBank(cfg, buf.SampleRate)
	if err != nil {
		return Unavailable, err
	}

	out := Unavailable
	for c := range buf.Channels() {
		ch := bank.Channel(buf.Channel(c))
		out.Low = level.Max(out.Low, ch.Low)
		out.Mid = level.Max(out.Mid, ch.Mid)
		out.High = level.Max(out.High, ch.High)
	}

	return out, nil
}

// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"fmt"

	"github.com/ik5/audmeter/multiband"
	"github.com/ik5/audmeter/truepeak"
)

// Crossovers are the band split frequencies in Hz.
type Crossovers struct {
	LowMidHz  float64 `yaml:"low_mid_hz" json:"low_mid_hz"`
	MidHighHz float64 `yaml:"mid_high_hz" json:"mid_high_hz"`
}

// Config controls every meter of the pipeline. It is passed by value and
// never changed by the pipeline.
type Config struct {
	BandCrossovers Crossovers `yaml:"band_crossovers" json:"band_crossovers"`
	FilterOrder    int        `yaml:"filter_order" json:"filter_order"`
	// BlockSeconds is the length of both the short-term loudness window and
	// the band RMS block.
	BlockSeconds float64 `yaml:"block_seconds" json:"block_seconds"`
	// StepSeconds is the hop of both window series.
	StepSeconds        float64 `yaml:"step_seconds" json:"step_seconds"`
	TruePeakOversample int     `yaml:"true_peak_oversample" json:"true_peak_oversample"`
}

// DefaultConfig is the canonical configuration with a one second step.
func DefaultConfig() Config {
	mb := multiband.DefaultConfig()
	return Config{
		BandCrossovers:     Crossovers{LowMidHz: mb.LowMidHz, MidHighHz: mb.MidHighHz},
		FilterOrder:        mb.Order,
		BlockSeconds:       mb.BlockSeconds,
		StepSeconds:        mb.StepSeconds,
		TruePeakOversample: truepeak.DefaultFactor,
	}
}

// FineConfig is DefaultConfig with a 100 ms step.
func FineConfig() Config {
	c := DefaultConfig()
	c.StepSeconds = 0.1
	return c
}

// Multiband returns the filter bank part of c.
func (c Config) Multiband() multiband.Config {
	return multiband.Config{
		LowMidHz:     c.BandCrossovers.LowMidHz,
		MidHighHz:    c.BandCrossovers.MidHighHz,
		Order:        c.FilterOrder,
		BlockSeconds: c.BlockSeconds,
		StepSeconds:  c.StepSeconds,
	}
}

// Validate reports the first problem with c wrapped in ErrConfigInvalid.
// Crossovers are checked against the Nyquist frequency of each file later.
func (c Config) Validate() error {
	if err := c.Multiband().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if c.TruePeakOversample < 1 {
		return fmt.Errorf("%w: true peak oversampling factor %d", ErrConfigInvalid, c.TruePeakOversample)
	}
	return nil
}

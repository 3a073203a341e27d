// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"fmt"

	"github.com/ik5/audmeter/audio"
	"github.com/ik5/audmeter/level"
	"github.com/ik5/audmeter/loudness"
	"github.com/ik5/audmeter/multiband"
	"github.com/ik5/audmeter/probe"
	"github.com/ik5/audmeter/truepeak"
	"github.com/sirupsen/logrus"
)

// Metric names used in logs and Metrics labels.
const (
	MetricIntegrated = "lufs_i"
	MetricShortTerm  = "lufs_s"
	MetricTruePeak   = "true_peak"
	MetricSamplePeak = "sample_peak"
	MetricBands      = "bands"
)

// guard runs fn and turns an error or a panic into fallback plus an error
// wrapping ErrMetricUnavailable.
func guard[T any](metric string, fallback T, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = fallback
			err = fmt.Errorf("%w: %s: panic: %v", ErrMetricUnavailable, metric, r)
		}
	}()

	v, err = fn()
	if err != nil {
		return fallback, fmt.Errorf("%w: %s: %w", ErrMetricUnavailable, metric, err)
	}

	return v, nil
}

type shortTerm struct {
	max, lra level.Value
}

// meters are the functions a measurement runs; replaced in tests.
type meters struct {
	integrated func(*audio.Buffer) level.Value
	windowed   func(buf *audio.Buffer, window, hop float64) []float64
	truePeak   func(*audio.Buffer, int) (level.Value, error)
	samplePeak func(*audio.Buffer) level.Value
	bands      func(*audio.Buffer, multiband.Config) (multiband.Bands, error)
}

var defaultMeters = meters{
	integrated: loudness.Integrated,
	windowed:   loudness.Windowed,
	truePeak:   truepeak.TruePeak,
	samplePeak: truepeak.SamplePeak,
	bands:      multiband.Analyze,
}

// Measure runs every meter over res and returns the complete Record.
func (p *Pipeline) Measure(name string, res *probe.Result) *Record {
	return p.measure(p.log.WithField("file", name), name, res)
}

func (p *Pipeline) measure(log logrus.FieldLogger, name string, res *probe.Result) *Record {
	buf := res.Buffer
	cfg := p.cfg
	m := p.meters

	failed := func(metric string, err error) {
		log.WithError(err).WithField("metric", metric).Warn("Metric unavailable")
		p.metrics.metricFailed(metric)
	}

	value := func(metric string, fn func() (level.Value, error)) level.Value {
		v, err := guard(metric, level.Unavailable, fn)
		if err != nil {
			failed(metric, err)
		}
		return v
	}

	var loud Loudness
	loud.Integrated = value(MetricIntegrated, func() (level.Value, error) {
		return m.integrated(buf), nil
	})
	loud.TruePeak = value(MetricTruePeak, func() (level.Value, error) {
		return m.truePeak(buf, cfg.TruePeakOversample)
	})
	loud.SamplePeak = value(MetricSamplePeak, func() (level.Value, error) {
		return m.samplePeak(buf), nil
	})

	st, err := guard(MetricShortTerm, shortTerm{}, func() (shortTerm, error) {
		lra, maximum := loudness.Range(m.windowed(buf, cfg.BlockSeconds, cfg.StepSeconds))
		return shortTerm{max: maximum, lra: lra}, nil
	})
	if err != nil {
		failed(MetricShortTerm, err)
	}
	loud.ShortTermMax, loud.Range = st.max, st.lra

	bands, err := guard(MetricBands, multiband.Unavailable, func() (multiband.Bands, error) {
		return m.bands(buf, cfg.Multiband())
	})
	if err != nil {
		failed(MetricBands, err)
	}

	info := res.Info
	return &Record{
		Filename: name,
		Info:     &info,
		Loudness: loud,
		Bands:    bands,
		Clipping: loud.TruePeak.Above(0),
		Status:   StatusComplete,
	}
}

// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline outcomes. A nil *Metrics records nothing.
type Metrics struct {
	Files            *prometheus.CounterVec
	MetricFailures   *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audmeter_files_total",
			Help: "Inputs processed, by final status.",
		}, []string{"status"}),
		MetricFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audmeter_metric_failures_total",
			Help: "Metrics degraded to unavailable by an error or panic.",
		}, []string{"metric"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "audmeter_file_analysis_seconds",
			Help:    "Time spent loading and measuring one input.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Files, m.MetricFailures, m.AnalysisDuration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) fileDone(status Status, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Files.WithLabelValues(string(status)).Inc()
	m.AnalysisDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) metricFailed(metric string) {
	if m == nil {
		return
	}
	m.MetricFailures.WithLabelValues(metric).Inc()
}

package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"csv-insight-service/internal/core/domain"
	ports "csv-insight-service/internal/core/ports/output"
)

const namespace = "csv_insight"

type metricsRecorder struct {
	outcomes      *prometheus.CounterVec
	modelLatency  *prometheus.HistogramVec
	modelFailures *prometheus.CounterVec
	seriesPoints  prometheus.Histogram
}

// NewMetricsRecorder registers the pipeline collectors with reg.
func NewMetricsRecorder(reg prometheus.Registerer) ports.MetricsRecorder {
	factory := promauto.With(reg)

	return &metricsRecorder{
		// Labels: outcome (answered, chart_rendered, extraction_miss, render_failed, transport_failed, empty_reply)
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "requests_total",
			Help:      "Pipeline runs by outcome",
		}, []string{"outcome"}),

		modelLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Language model call latency",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"service"}),

		modelFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "errors_total",
			Help:      "Failed language model calls",
		}, []string{"service"}),

		seriesPoints: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "series_points",
			Help:      "Number of bars per extracted chart series",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

func (m *metricsRecorder) RecordOutcome(outcome domain.Outcome) {
	m.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (m *metricsRecorder) RecordModelCall(service string, d time.Duration, err error) {
	m.modelLatency.WithLabelValues(service).Observe(d.Seconds())
	if err != nil {
		m.modelFailures.WithLabelValues(service).Inc()
	}
}

func (m *metricsRecorder) RecordChartSeries(points int) {
	m.seriesPoints.Observe(float64(points))
}

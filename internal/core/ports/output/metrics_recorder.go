package ports

import (
	"time"

	"csv-insight-service/internal/core/domain"
)

// MetricsRecorder receives pipeline observations.
type MetricsRecorder interface {
	RecordOutcome(outcome domain.Outcome)
	RecordModelCall(service string, d time.Duration, err error)
	RecordChartSeries(points int)
}

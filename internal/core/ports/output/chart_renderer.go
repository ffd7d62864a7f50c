package ports

import (
	"context"

	"csv-insight-service/internal/core/domain"
)

// ChartRenderer draws a chart and publishes it under a unique file name.
// Errors are *domain.RenderError.
type ChartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec) (*domain.ChartArtifact, error)
}

package ports

import (
	"context"

	"github.com/google/uuid"

	"csv-insight-service/internal/core/domain"
)

type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	// Get returns domain.ErrSessionNotFound when nothing was uploaded for id.
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DatasetParser turns an uploaded file into rows.
type DatasetParser interface {
	Parse(fileName string, content []byte) (domain.TabularDataset, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the upload of a single browser session.
type Session struct {
	ID         uuid.UUID
	FileName   string
	RawContent string
	Dataset    TabularDataset
	CreatedAt  time.Time
	LastAccess time.Time
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv-insight-service/internal/core/domain"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()

	id := uuid.New()
	session := &domain.Session{
		ID:       id,
		FileName: "a.csv",
		Dataset:  domain.TabularDataset{Rows: [][]string{{"a"}}},
	}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", got.FileName)
	assert.Equal(t, session.Dataset, got.Dataset)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Unknown(t *testing.T) {
	_, err := NewSessionRepository(0).Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(time.Hour).(*sessionRepository)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Save(ctx, &domain.Session{ID: id, LastAccess: now}))

	now = now.Add(30 * time.Minute)
	_, err := repo.Get(ctx, id)
	require.NoError(t, err, "access refreshes the session")

	now = now.Add(59 * time.Minute)
	_, err = repo.Get(ctx, id)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_ReturnsCopies(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Save(ctx, &domain.Session{ID: id, FileName: "orig.csv"}))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	got.FileName = "changed.csv"

	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "orig.csv", again.FileName)
}

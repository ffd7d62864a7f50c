package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"csv-insight-service/internal/core/domain"
	ports "csv-insight-service/internal/core/ports/output"
)

const DefaultPreviewLines = 5

// SessionService stores one upload per session and hands its dataset to the pipeline.
type SessionService struct {
	repo         ports.SessionRepository
	parser       ports.DatasetParser
	previewLines int
}

func NewSessionService(repo ports.SessionRepository, parser ports.DatasetParser, previewLines int) *SessionService {
	if previewLines <= 0 {
		previewLines = DefaultPreviewLines
	}
	return &SessionService{repo: repo, parser: parser, previewLines: previewLines}
}

// Upload parses content and stores it as the dataset of session id, replacing
// any earlier upload. A nil or unknown id starts a new session.
func (s *SessionService) Upload(ctx context.Context, id uuid.UUID, fileName string, content []byte) (*domain.Session, error) {
	if len(content) == 0 {
		return nil, domain.ErrMissingFile
	}

	dataset, err := s.parser.Parse(fileName, content)
	if err != nil {
		return nil, err
	}
	if dataset.IsEmpty() {
		return nil, domain.ErrEmptyDataset
	}

	id, err = s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Spreadsheets are binary; keep a comma separated rendering for previews.
	raw := string(content)
	if isSpreadsheet(fileName) {
		raw = joinRows(dataset.Rows)
	}

	now := time.Now()
	session := &domain.Session{
		ID:         id,
		FileName:   fileName,
		RawContent: raw,
		Dataset:    dataset,
		CreatedAt:  now,
		LastAccess: now,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// resolveID keeps id only when it names a stored session, so clients cannot
// pick their own session ids.
func (s *SessionService) resolveID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if id == uuid.Nil {
		return uuid.New(), nil
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return uuid.New(), nil
		}
		return uuid.Nil, fmt.Errorf("look up session: %w", err)
	}
	return id, nil
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if id == uuid.Nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.repo.Get(ctx, id)
}

// Dataset returns the rows uploaded in session id.
func (s *SessionService) Dataset(ctx context.Context, id uuid.UUID) (domain.TabularDataset, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return domain.TabularDataset{}, err
	}
	return session.Dataset, nil
}

func (s *SessionService) Reset(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return s.repo.Delete(ctx, id)
}

func (s *SessionService) Preview(session *domain.Session) string {
	if session == nil {
		return ""
	}
	return PreviewContent(session.RawContent, s.previewLines)
}

// PreviewContent keeps the first maxLines lines of content and notes how many
// were left out. Trailing empty lines are not counted.
func PreviewContent(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= maxLines {
		return content
	}

	var sb strings.Builder
	for _, line := range lines[:maxLines] {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "... (showing first %d lines of %d total)", maxLines, len(lines))
	return sb.String()
}

func isSpreadsheet(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".xlsx")
}

func joinRows(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ","))
		sb.WriteByte('\n')
	}
	return sb.String()
}

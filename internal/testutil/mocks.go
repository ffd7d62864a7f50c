package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"csv-insight-service/internal/core/domain"
)

// MockLanguageModel is a mock of ports.LanguageModel.
type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLanguageModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockChartRenderer is a mock of ports.ChartRenderer.
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) Render(ctx context.Context, spec domain.ChartSpec) (*domain.ChartArtifact, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartArtifact), args.Error(1)
}

// MockSessionRepo is a mock of ports.SessionRepository.
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDatasetParser is a mock of ports.DatasetParser.
type MockDatasetParser struct {
	mock.Mock
}

func (m *MockDatasetParser) Parse(fileName string, content []byte) (domain.TabularDataset, error) {
	args := m.Called(fileName, content)
	return args.Get(0).(domain.TabularDataset), args.Error(1)
}

// MockMetricsRecorder is a mock of ports.MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) RecordOutcome(outcome domain.Outcome) {
	m.Called(outcome)
}

func (m *MockMetricsRecorder) RecordModelCall(service string, d time.Duration, err error) {
	m.Called(service, d, err)
}

func (m *MockMetricsRecorder) RecordChartSeries(points int) {
	m.Called(points)
}

package research

import (
	"context"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

// MockRepository is a RecordRepository driven by function fields.
type MockRepository struct {
	SaveFunc func(ctx context.Context, records []domain.Record) error
	LoadFunc func(ctx context.Context) (*domain.LoadResult, error)

	saved [][]domain.Record
}

func (m *MockRepository) Save(ctx context.Context, records []domain.Record) error {
	m.saved = append(m.saved, records)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, records)
	}
	return nil
}

func (m *MockRepository) Load(ctx context.Context) (*domain.LoadResult, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &domain.LoadResult{}, nil
}

func (m *MockRepository) Kind() string     { return "mock" }
func (m *MockRepository) Location() string { return "mock://records" }

// recordingMetrics counts exporter calls.
type recordingMetrics struct {
	added, saved, loaded, skipped, analyses int
}

func (r *recordingMetrics) RecordAdded(ctx context.Context, rec domain.Record) { r.added++ }

func (r *recordingMetrics) RecordsSaved(ctx context.Context, backend string, count int) {
	r.saved += count
}

func (r *recordingMetrics) RecordsLoaded(ctx context.Context, backend string, loaded, skipped int) {
	r.loaded += loaded
	r.skipped += skipped
}

func (r *recordingMetrics) AnalysisRun(ctx context.Context, results []domain.Analysis) {
	r.analyses += len(results)
}

func (r *recordingMetrics) Close(ctx context.Context) error { return nil }

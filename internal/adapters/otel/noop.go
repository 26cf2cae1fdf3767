package otel

import (
	"context"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordAdded(ctx context.Context, r domain.Record) {}

func (e *NoOpExporter) RecordsSaved(ctx context.Context, backend string, count int) {}

func (e *NoOpExporter) RecordsLoaded(ctx context.Context, backend string, loaded, skipped int) {}

func (e *NoOpExporter) AnalysisRun(ctx context.Context, results []domain.Analysis) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}

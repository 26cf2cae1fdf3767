package ports

import (
	"context"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

// MetricsExporter exports usage metrics to an external observability system.
type MetricsExporter interface {
	RecordAdded(ctx context.Context, r domain.Record)
	RecordsSaved(ctx context.Context, backend string, count int)
	RecordsLoaded(ctx context.Context, backend string, loaded, skipped int)
	AnalysisRun(ctx context.Context, results []domain.Analysis)
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// NopMetricsExporter discards every metric.
type NopMetricsExporter struct{}

func (NopMetricsExporter) RecordAdded(context.Context, domain.Record) {}

func (NopMetricsExporter) RecordsSaved(context.Context, string, int) {}

func (NopMetricsExporter) RecordsLoaded(context.Context, string, int, int) {}

func (NopMetricsExporter) AnalysisRun(context.Context, []domain.Analysis) {}

func (NopMetricsExporter) Close(context.Context) error { return nil }

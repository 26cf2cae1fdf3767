// Package research wires the entry store to persistence, statistics and
// metrics. Every presentation talks to a Service.
package research

import (
	"context"
	"fmt"
	"sync"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/ports"
)

// Service owns the in-memory entry store. It is safe for concurrent use.
type Service struct {
	mu      sync.Mutex
	store   *domain.EntryStore
	repo    ports.RecordRepository
	metrics ports.MetricsExporter
	logger  domain.Logger
	policy  domain.StdDevPolicy
}

// NewService creates a service with an empty store. A nil metrics exporter
// or logger disables that concern.
func NewService(
	repo ports.RecordRepository,
	metrics ports.MetricsExporter,
	logger domain.Logger,
	policy domain.StdDevPolicy,
) *Service {
	if metrics == nil {
		metrics = ports.NopMetricsExporter{}
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Service{
		store:   domain.NewEntryStore(),
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		policy:  policy,
	}
}

// AddEntry parses rawPoints and appends the resulting record. On a parse
// error nothing is added.
func (s *Service) AddEntry(ctx context.Context, name, date, researcher, rawPoints string) (domain.Record, error) {
	points, err := domain.ParseDataPoints(rawPoints)
	if err != nil {
		s.logger.Debug(fmt.Sprintf("Rejected entry %q: %v", name, err))
		return domain.Record{}, err
	}

	rec := domain.NewRecord(name, date, researcher, points)
	s.Add(ctx, rec)
	return rec, nil
}

// Add appends rec to the store.
func (s *Service) Add(ctx context.Context, rec domain.Record) {
	s.mu.Lock()
	s.store.Append(rec)
	s.mu.Unlock()

	s.logger.Debug(fmt.Sprintf("Added entry %q with %d data points", rec.Name, len(rec.DataPoints)))
	s.metrics.RecordAdded(ctx, rec)
}

// Entries returns a copy of every record in insertion order.
func (s *Service) Entries() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Analyze summarizes every record with the configured policy.
func (s *Service) Analyze(ctx context.Context) []domain.Analysis {
	results := domain.Analyze(s.Entries(), s.policy)
	s.metrics.AnalysisRun(ctx, results)
	return results
}

// Save writes the whole store to the repository and returns the number of
// records written.
func (s *Service) Save(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.All()
	if err := s.repo.Save(ctx, records); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to save to %s: %v", s.repo.Location(), err))
		return 0, fmt.Errorf("failed to save entries: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Saved %d entries to %s", len(records), s.repo.Location()))
	s.metrics.RecordsSaved(ctx, s.repo.Kind(), len(records))
	return len(records), nil
}

// Load replaces the store with the repository contents. On error the store
// is left unchanged.
func (s *Service) Load(ctx context.Context) (*domain.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to load from %s: %v", s.repo.Location(), err))
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	s.store.Replace(res.Records)
	s.logger.Info(fmt.Sprintf("Loaded %d entries from %s (%d lines skipped)",
		len(res.Records), s.repo.Location(), len(res.Skipped)))
	s.metrics.RecordsLoaded(ctx, s.repo.Kind(), len(res.Records), len(res.Skipped))
	return res, nil
}

// Policy returns the standard deviation policy used by Analyze.
func (s *Service) Policy() domain.StdDevPolicy {
	return s.policy
}

// Location describes where Save writes.
func (s *Service) Location() string {
	return s.repo.Location()
}

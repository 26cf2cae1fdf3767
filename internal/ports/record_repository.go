package ports

import (
	"context"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

// RecordRepository persists the whole entry store at once.
type RecordRepository interface {
	// Save overwrites the stored records with records.
	Save(ctx context.Context, records []domain.Record) error
	// Load returns the stored records. Missing storage yields an empty result.
	Load(ctx context.Context) (*domain.LoadResult, error)
	// Kind names the backend, e.g. "file" or "libsql".
	Kind() string
	// Location describes where records are stored, for display.
	Location() string
}

package turso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

// Kind is the backend name reported by RecordRepository.
const Kind = "libsql"

// SaveInfo describes one completed Save.
type SaveInfo struct {
	ID          string
	RecordCount int
	SavedAt     time.Time
}

// RecordRepository stores the entry store in the records and
// record_data_points tables. Every Save replaces the previous contents.
type RecordRepository struct {
	db       *sql.DB
	location string
	logger   domain.Logger
	now      func() time.Time
}

func NewRecordRepository(db *sql.DB, location string, logger domain.Logger) *RecordRepository {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &RecordRepository{
		db:       db,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *RecordRepository) Kind() string { return Kind }

func (r *RecordRepository) Location() string { return r.location }

func (r *RecordRepository) Save(ctx context.Context, records []domain.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM record_data_points`); err != nil {
		return fmt.Errorf("failed to clear data points: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	now := r.now().UTC().Format(time.RFC3339)
	for i, rec := range records {
		id := uuid.New().String()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (id, position, name, date, researcher, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, rec.Name, rec.Date, rec.Researcher, now,
		); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", rec.Name, err)
		}

		for j, p := range rec.DataPoints {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO record_data_points (record_id, position, value) VALUES (?, ?, ?)`,
				id, j, p,
			); err != nil {
				return fmt.Errorf("failed to insert data point %d of %q: %w", j+1, rec.Name, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO saves (id, record_count, saved_at) VALUES (?, ?, ?)`,
		uuid.New().String(), len(records), now,
	); err != nil {
		return fmt.Errorf("failed to record save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	r.logger.Debug(fmt.Sprintf("Saved %d records to %s", len(records), r.location))
	return nil
}

func (r *RecordRepository) Load(ctx context.Context) (*domain.LoadResult, error) {
	// Text columns are read as blobs so the driver does not turn date-like
	// values into time.Time.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, CAST(name AS BLOB), CAST(date AS BLOB), CAST(researcher AS BLOB)
		FROM records ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	var records []domain.Record
	for rows.Next() {
		var id string
		var name, date, researcher []byte
		if err := rows.Scan(&id, &name, &date, &researcher); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		ids = append(ids, id)
		records = append(records, domain.Record{
			Name:       string(name),
			Date:       string(date),
			Researcher: string(researcher),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	points, err := r.loadPoints(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.LoadResult{Records: make([]domain.Record, 0, len(records))}
	for i, rec := range records {
		rec.DataPoints = points[ids[i]]
		if rec.DataPoints == nil {
			rec.DataPoints = []float64{}
		}
		result.Records = append(result.Records, rec)
	}

	r.logger.Debug(fmt.Sprintf("Loaded %d records from %s", len(result.Records), r.location))
	return result, nil
}

func (r *RecordRepository) loadPoints(ctx context.Context) (map[string][]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT record_id, value FROM record_data_points ORDER BY record_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list data points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	points := make(map[string][]float64)
	for rows.Next() {
		var id string
		var v float64
		if err := rows.Scan(&id, &v); err != nil {
			return nil, fmt.Errorf("failed to scan data point: %w", err)
		}
		points[id] = append(points[id], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate data points: %w", err)
	}
	return points, nil
}

// LastSave returns the most recent save, or nil if nothing was saved yet.
func (r *RecordRepository) LastSave(ctx context.Context) (*SaveInfo, error) {
	var info SaveInfo
	var savedAt []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, record_count, CAST(saved_at AS BLOB) FROM saves ORDER BY saved_at DESC, rowid DESC LIMIT 1`,
	).Scan(&info.ID, &info.RecordCount, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last save: %w", err)
	}

	info.SavedAt, err = time.Parse(time.RFC3339, string(savedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to parse save time %q: %w", savedAt, err)
	}
	return &info, nil
}

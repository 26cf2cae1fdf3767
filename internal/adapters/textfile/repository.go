package textfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/ports"
)

// Kind is the backend name reported by Repository.
const Kind = "file"

// Options controls how a Repository reads its file.
type Options struct {
	// SkipInvalidLines drops lines that fail to decode instead of failing the load.
	SkipInvalidLines bool
}

// Repository stores records in a line-oriented text file.
type Repository struct {
	path   string
	codec  ports.RecordCodec
	opts   Options
	logger domain.Logger
}

func NewRepository(path string, codec ports.RecordCodec, logger domain.Logger, opts Options) *Repository {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Repository{
		path:   path,
		codec:  codec,
		opts:   opts,
		logger: logger,
	}
}

func (r *Repository) Kind() string { return Kind }

func (r *Repository) Location() string { return r.path }

// Save overwrites the file with one encoded line per record.
// Nothing is written when any record fails to encode.
func (r *Repository) Save(ctx context.Context, records []domain.Record) (err error) {
	var buf bytes.Buffer
	for i, rec := range records {
		line, err := r.codec.Encode(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %d (%q): %w", i+1, rec.Name, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("failed to create data file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close data file: %w", cerr)
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	r.logger.Debug(fmt.Sprintf("Saved %d records to %s (%s)", len(records), r.path, r.codec.Name()))
	return nil
}

// Load reads every record from the file. A missing file is an empty result.
func (r *Repository) Load(ctx context.Context) (*domain.LoadResult, error) {
	result := &domain.LoadResult{Records: []domain.Record{}}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug(fmt.Sprintf("Data file %s does not exist, starting empty", r.path))
			return result, nil
		}
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := bufio.NewReader(f)

	lineNo := 0
	for {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read data file: %w", readErr)
		}
		if len(line) == 0 && readErr != nil {
			break
		}
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line = bytes.TrimSuffix(bytes.TrimSuffix(line, []byte{'\n'}), []byte{'\r'})
		if len(bytes.TrimSpace(line)) == 0 {
			if readErr != nil {
				break
			}
			continue
		}

		rec, err := r.codec.Decode(line)
		switch {
		case err == nil:
			result.Records = append(result.Records, rec)
		case !r.opts.SkipInvalidLines:
			return nil, fmt.Errorf("failed to load %s: %w", r.path, &domain.LineError{Line: lineNo, Err: err})
		default:
			lineErr := &domain.LineError{Line: lineNo, Err: err}
			r.logger.Error(fmt.Sprintf("Skipping %s: %v", r.path, lineErr))
			result.Skipped = append(result.Skipped, lineErr)
		}

		if readErr != nil {
			break
		}
	}

	r.logger.Debug(fmt.Sprintf("Loaded %d records from %s (%d skipped)", len(result.Records), r.path, len(result.Skipped)))
	return result, nil
}

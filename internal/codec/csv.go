package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/util"
)

// CSV is the RFC 4180 variant of the legacy layout: text fields are quoted
// when they contain commas or quotes.
type CSV struct{}

func (CSV) Name() string { return CSVName }

func (CSV) Encode(r domain.Record) ([]byte, error) {
	if err := checkNoLineBreaks(r); err != nil {
		return nil, err
	}

	row := make([]string, 0, 3+len(r.DataPoints))
	row = append(row, r.Name, r.Date, r.Researcher)
	for _, p := range r.DataPoints {
		row = append(row, util.FormatFloat(p))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("failed to write CSV row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV row: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\r\n"), nil
}

func (CSV) Decode(line []byte) (domain.Record, error) {
	reader := csv.NewReader(bytes.NewReader(line))
	reader.FieldsPerRecord = -1
	row, err := reader.Read()
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to read CSV row: %w", err)
	}
	if len(row) < 3 {
		return domain.Record{}, fmt.Errorf("expected at least 3 fields, got %d", len(row))
	}

	points, err := parsePoints(row[3:])
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		Name:       row[0],
		Date:       row[1],
		Researcher: row[2],
		DataPoints: points,
	}, nil
}

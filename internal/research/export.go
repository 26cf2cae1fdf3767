package research

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/util"
)

// Export formats.
const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

// ExportRow is one record together with its statistics.
type ExportRow struct {
	Experiment string    `json:"experiment"`
	Date       string    `json:"date"`
	Researcher string    `json:"researcher"`
	DataPoints []float64 `json:"data_points"`
	Count      int       `json:"count"`
	Mean       *float64  `json:"mean"`
	StdDev     *float64  `json:"stddev"`
	Median     *float64  `json:"median"`
	Error      string    `json:"error,omitempty"`
}

// MarshalJSON writes non-finite statistics and data points as null.
func (r ExportRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Experiment string           `json:"experiment"`
		Date       string           `json:"date"`
		Researcher string           `json:"researcher"`
		DataPoints []util.JSONFloat `json:"data_points"`
		Count      int              `json:"count"`
		Mean       *util.JSONFloat  `json:"mean"`
		StdDev     *util.JSONFloat  `json:"stddev"`
		Median     *util.JSONFloat  `json:"median"`
		Error      string           `json:"error,omitempty"`
	}{
		Experiment: r.Experiment,
		Date:       r.Date,
		Researcher: r.Researcher,
		DataPoints: util.JSONFloats(r.DataPoints),
		Count:      r.Count,
		Mean:       util.JSONOptional(r.Mean),
		StdDev:     util.JSONOptional(r.StdDev),
		Median:     util.JSONOptional(r.Median),
		Error:      r.Error,
	})
}

// BuildExport pairs records with the analyses computed for them.
// analyses must be in record order.
func BuildExport(records []domain.Record, analyses []domain.Analysis) []ExportRow {
	rows := make([]ExportRow, 0, len(records))
	for i, r := range records {
		row := ExportRow{
			Experiment: r.Name,
			Date:       r.Date,
			Researcher: r.Researcher,
			DataPoints: r.DataPoints,
			Count:      len(r.DataPoints),
		}
		if row.DataPoints == nil {
			row.DataPoints = []float64{}
		}

		if i < len(analyses) {
			a := analyses[i]
			if a.Err != nil {
				row.Error = a.Err.Error()
			} else {
				mean, median := a.Summary.Mean, a.Summary.Median
				row.Mean = &mean
				row.Median = &median
				row.StdDev = a.Summary.StdDev
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Report analyzes a snapshot of the store and pairs every entry with its result.
func (s *Service) Report(ctx context.Context) []ExportRow {
	records := s.Entries()
	analyses := domain.Analyze(records, s.policy)
	s.metrics.AnalysisRun(ctx, analyses)
	return BuildExport(records, analyses)
}

// Export writes Report to w in the given format.
func (s *Service) Export(ctx context.Context, w io.Writer, format string) (int, error) {
	rows := s.Report(ctx)
	if err := WriteExport(w, format, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// WriteExport writes rows as indented JSON or as CSV with a header.
func WriteExport(w io.Writer, format string, rows []ExportRow) error {
	switch format {
	case ExportJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case ExportCSV:
		writer := csv.NewWriter(w)

		header := []string{
			"experiment", "date", "researcher", "data_points",
			"count", "mean", "stddev", "median", "error",
		}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}

		for _, r := range rows {
			points := make([]string, len(r.DataPoints))
			for i, p := range r.DataPoints {
				points[i] = util.FormatFloat(p)
			}
			row := []string{
				r.Experiment, r.Date, r.Researcher, strings.Join(points, ";"),
				strconv.Itoa(r.Count), optional(r.Mean), optional(r.StdDev), optional(r.Median),
				r.Error,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s (use %s or %s)", format, ExportJSON, ExportCSV)
	}
	return nil
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return util.FormatFloat(*v)
}

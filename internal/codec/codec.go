// Package codec holds the line formats a data file can be written in.
//
// Every format stores one record per line. The legacy format is the plain
// comma-joined layout of research_data.txt; it does not escape commas,
// so a text field containing a comma does not survive a reload. The csv and
// jsonl formats quote text fields and round-trip any record whose text has no
// line breaks (csv) or any record with finite data points (jsonl).
package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/ports"
)

const (
	LegacyName    = "legacy"
	CSVName       = "csv"
	JSONLinesName = "jsonl"
)

var registry = map[string]func() ports.RecordCodec{
	LegacyName:    func() ports.RecordCodec { return Legacy{} },
	CSVName:       func() ports.RecordCodec { return CSV{} },
	JSONLinesName: func() ports.RecordCodec { return JSONLines{} },
}

// New returns the codec registered under name. The empty name selects legacy.
func New(name string) (ports.RecordCodec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = LegacyName
	}
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (use one of %s)", domain.ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names lists the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parsePoints(tokens []string) ([]float64, error) {
	points := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := domain.ParseDataPoint(tok)
		if err != nil {
			return nil, err
		}
		points = append(points, v)
	}
	return points, nil
}

func checkNoLineBreaks(r domain.Record) error {
	for _, field := range []string{r.Name, r.Date, r.Researcher} {
		if strings.ContainsAny(field, "\r\n") {
			return fmt.Errorf("%w: text field %q contains a line break", domain.ErrUnencodable, field)
		}
	}
	return nil
}

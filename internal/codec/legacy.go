package codec

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/util"
)

// Legacy is the unescaped name,date,researcher,dp1,...,dpN format.
type Legacy struct{}

func (Legacy) Name() string { return LegacyName }

func (Legacy) Encode(r domain.Record) ([]byte, error) {
	if err := checkNoLineBreaks(r); err != nil {
		return nil, err
	}

	fields := make([]string, 0, 3+len(r.DataPoints))
	fields = append(fields, r.Name, r.Date, r.Researcher)
	for _, p := range r.DataPoints {
		fields = append(fields, util.FormatFloat(p))
	}
	return []byte(strings.Join(fields, ",")), nil
}

func (Legacy) Decode(line []byte) (domain.Record, error) {
	// Only the line terminator is dropped; text fields keep their spacing.
	parts := strings.Split(strings.TrimRight(string(line), "\r\n"), ",")
	if len(parts) < 3 {
		return domain.Record{}, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}

	points, err := parsePoints(parts[3:])
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		Name:       parts[0],
		Date:       parts[1],
		Researcher: parts[2],
		DataPoints: points,
	}, nil
}

package codec

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

// JSONLines stores one JSON object per line.
type JSONLines struct{}

type jsonRecord struct {
	Name       string    `json:"name"`
	Date       string    `json:"date"`
	Researcher string    `json:"researcher"`
	DataPoints []float64 `json:"data_points"`
}

func (JSONLines) Name() string { return JSONLinesName }

func (JSONLines) Encode(r domain.Record) ([]byte, error) {
	points := r.DataPoints
	if points == nil {
		points = []float64{}
	}
	data, err := json.Marshal(jsonRecord{
		Name:       r.Name,
		Date:       r.Date,
		Researcher: r.Researcher,
		DataPoints: points,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnencodable, err)
	}
	return data, nil
}

func (JSONLines) Decode(line []byte) (domain.Record, error) {
	var jr jsonRecord
	if err := json.Unmarshal(line, &jr); err != nil {
		return domain.Record{}, fmt.Errorf("failed to decode JSON record: %w", err)
	}
	if jr.DataPoints == nil {
		jr.DataPoints = []float64{}
	}
	return domain.Record{
		Name:       jr.Name,
		Date:       jr.Date,
		Researcher: jr.Researcher,
		DataPoints: jr.DataPoints,
	}, nil
}

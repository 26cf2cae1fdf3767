package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDataPoint parses one data point token. Surrounding whitespace is ignored.
func ParseDataPoint(token string) (float64, error) {
	trimmed := strings.TrimSpace(token)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDataPoint, token)
	}
	return v, nil
}

// ParseDataPoints parses a comma-separated list of numbers as typed by a user.
// Any non-numeric or empty token fails the whole list.
func ParseDataPoints(raw string) ([]float64, error) {
	tokens := strings.Split(raw, ",")
	points := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := ParseDataPoint(tok)
		if err != nil {
			return nil, err
		}
		points = append(points, v)
	}
	return points, nil
}

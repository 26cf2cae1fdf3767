package domain

import (
	"fmt"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// StdDevPolicy decides what a single data point reports as standard deviation.
type StdDevPolicy string

const (
	// StdDevUndefined leaves Summary.StdDev nil when there is one data point.
	StdDevUndefined StdDevPolicy = "undefined"
	// StdDevZero reports 0 when there is one data point.
	StdDevZero StdDevPolicy = "zero"
)

// ParseStdDevPolicy resolves a policy name. The empty string selects StdDevUndefined.
func ParseStdDevPolicy(s string) (StdDevPolicy, error) {
	switch StdDevPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StdDevUndefined:
		return StdDevUndefined, nil
	case StdDevZero:
		return StdDevZero, nil
	default:
		return "", fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownPolicy, s, StdDevUndefined, StdDevZero)
	}
}

// Summary holds descriptive statistics for one record.
type Summary struct {
	Count  int
	Mean   float64
	StdDev *float64 // nil when undefined
	Median float64
}

// Summarize computes mean, sample standard deviation and median of points.
// points is not modified.
func Summarize(points []float64, policy StdDevPolicy) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, ErrNoDataPoints
	}

	samp := stats.Sample{Xs: clonePoints(points)}
	samp.Sort()

	s := Summary{
		Count:  len(points),
		Mean:   samp.Mean(),
		Median: median(samp.Xs),
	}

	switch {
	case len(points) >= 2:
		sd := samp.StdDev()
		s.StdDev = &sd
	case policy == StdDevZero:
		zero := 0.0
		s.StdDev = &zero
	}

	return s, nil
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Analysis is the statistics outcome for one record.
type Analysis struct {
	Experiment string
	Summary    Summary
	Err        error
}

// Analyze summarizes every record in order. A record that cannot be
// summarized carries its error instead of a summary.
func Analyze(records []Record, policy StdDevPolicy) []Analysis {
	results := make([]Analysis, 0, len(records))
	for _, r := range records {
		s, err := Summarize(r.DataPoints, policy)
		if err != nil {
			err = fmt.Errorf("experiment %q: %w", r.Name, err)
		}
		results = append(results, Analysis{
			Experiment: r.Name,
			Summary:    s,
			Err:        err,
		})
	}
	return results
}

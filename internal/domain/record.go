package domain

// Record is one logged experiment.
type Record struct {
	Name       string
	Date       string // YYYY-MM-DD by convention, never parsed
	Researcher string
	DataPoints []float64
}

// NewRecord creates a Record owning its own copy of points.
func NewRecord(name, date, researcher string, points []float64) Record {
	return Record{
		Name:       name,
		Date:       date,
		Researcher: researcher,
		DataPoints: clonePoints(points),
	}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.DataPoints = clonePoints(r.DataPoints)
	return r
}

func clonePoints(points []float64) []float64 {
	out := make([]float64, len(points))
	copy(out, points)
	return out
}

// LoadResult is what a repository returns from a load.
// Skipped lists the lines dropped under the skip-invalid-lines policy.
type LoadResult struct {
	Records []Record
	Skipped []*LineError
}

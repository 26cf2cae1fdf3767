package domain

// EntryStore is the ordered in-memory collection of records for a session.
// It is not safe for concurrent use.
type EntryStore struct {
	records []Record
}

// NewEntryStore creates a store holding copies of records.
func NewEntryStore(records ...Record) *EntryStore {
	s := &EntryStore{}
	s.Replace(records)
	return s
}

// Append adds r to the end of the store.
func (s *EntryStore) Append(r Record) {
	s.records = append(s.records, r.Clone())
}

// All returns a copy of every record in insertion order.
func (s *EntryStore) All() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Replace discards the current contents and stores copies of records.
func (s *EntryStore) Replace(records []Record) {
	s.records = make([]Record, 0, len(records))
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
}

// Len returns the number of records.
func (s *EntryStore) Len() int {
	return len(s.records)
}

package domain

import (
	"errors"
	"testing"
)

func TestEntryStore_AppendKeepsOrder(t *testing.T) {
	s := NewEntryStore()
	s.Append(NewRecord("first", "2024-01-01", "a", []float64{1}))
	s.Append(NewRecord("second", "2024-01-02", "b", []float64{2}))
	s.Append(NewRecord("first", "2024-01-03", "c", []float64{3}))

	all := s.All()
	if len(all) != 3 || s.Len() != 3 {
		t.Fatalf("expected 3 records, got %d (Len %d)", len(all), s.Len())
	}
	want := []string{"first", "second", "first"}
	for i, r := range all {
		if r.Name != want[i] {
			t.Errorf("record %d: expected %s, got %s", i, want[i], r.Name)
		}
	}
}

func TestEntryStore_AllIsACopy(t *testing.T) {
	s := NewEntryStore(NewRecord("x", "", "", []float64{1, 2}))

	all := s.All()
	all[0].Name = "changed"
	all[0].DataPoints[0] = 99

	again := s.All()
	if again[0].Name != "x" || again[0].DataPoints[0] != 1 {
		t.Errorf("store was mutated through All(): %+v", again[0])
	}
}

func TestEntryStore_AppendCopiesPoints(t *testing.T) {
	points := []float64{1, 2}
	s := NewEntryStore()
	s.Append(Record{Name: "x", DataPoints: points})
	points[0] = 50

	if got := s.All()[0].DataPoints[0]; got != 1 {
		t.Errorf("expected stored point 1, got %v", got)
	}
}

func TestEntryStore_Replace(t *testing.T) {
	s := NewEntryStore(NewRecord("old", "", "", []float64{1}))
	s.Replace([]Record{
		NewRecord("new1", "", "", []float64{1}),
		NewRecord("new2", "", "", []float64{2}),
	})

	all := s.All()
	if len(all) != 2 || all[0].Name != "new1" || all[1].Name != "new2" {
		t.Errorf("unexpected contents after Replace: %+v", all)
	}

	s.Replace(nil)
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestLineError_Unwrap(t *testing.T) {
	err := &LineError{Line: 4, Err: ErrInvalidDataPoint}
	if !errors.Is(err, ErrMalformedLine) {
		t.Error("expected LineError to match ErrMalformedLine")
	}
	if !errors.Is(err, ErrInvalidDataPoint) {
		t.Error("expected LineError to match its cause")
	}
}

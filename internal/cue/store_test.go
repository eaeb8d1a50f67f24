package cue

import (
	"testing"
)

type recorder struct {
	rows     []Row
	selected int
	fields   Fields
	rowCalls int
}

func (r *recorder) RowsChanged(rows []Row, selected int) {
	r.rows = rows
	r.selected = selected
	r.rowCalls++
}

func (r *recorder) FieldsChanged(f Fields) {
	r.fields = f
}

func assertSorted(t *testing.T, rows []Row) {
	t.Helper()
	for i := 1; i < len(rows); i++ {
		if rows[i].Time < rows[i-1].Time {
			t.Fatalf("rows not sorted at %d: %v", i, rows)
		}
	}
}

func TestAddRowOnEmpty(t *testing.T) {
	s := NewStore(nil)
	rec := &recorder{}
	s.SetObserver(rec)

	s.AddRow()

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if got := s.Rows()[0]; got != (Row{}) {
		t.Errorf("new row = %+v, want zero row", got)
	}
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}
	want := Fields{Time: "0.000", Text: "", Enabled: true}
	if rec.fields != want {
		t.Errorf("fields = %+v, want %+v", rec.fields, want)
	}
	if rec.selected != 0 || len(rec.rows) != 1 {
		t.Errorf("observer saw %d rows selected %d", len(rec.rows), rec.selected)
	}
}

func TestAddRowAfterSelection(t *testing.T) {
	s := NewStore([]Row{{Time: 1, Text: "a"}, {Time: 5, Text: "b"}, {Time: 9, Text: "c"}})
	s.Select(1)

	s.AddRow()

	rows := s.Rows()
	if len(rows) != 4 {
		t.Fatalf("len = %d, want 4", len(rows))
	}
	if rows[2] != (Row{Time: 5}) {
		t.Errorf("inserted row = %+v, want {5 \"\"}", rows[2])
	}
	if s.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", s.Selected())
	}
	assertSorted(t, rows)
}

func TestAddRowWithoutSelectionGoesFirst(t *testing.T) {
	s := NewStore([]Row{{Time: 3, Text: "a"}})

	s.AddRow()

	rows := s.Rows()
	if rows[0] != (Row{}) || rows[1].Text != "a" {
		t.Errorf("rows = %+v", rows)
	}
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}
}

func TestDeleteRow(t *testing.T) {
	tests := []struct {
		name         string
		rows         []Row
		sel          int
		wantLen      int
		wantSelected int
		wantSelText  string
	}{
		{"middle selects previous", []Row{{1, "a"}, {2, "b"}, {3, "c"}}, 1, 2, 0, "a"},
		{"first selects next", []Row{{1, "a"}, {2, "b"}}, 0, 1, 0, "b"},
		{"last selects previous", []Row{{1, "a"}, {2, "b"}}, 1, 1, 0, "a"},
		{"only row clears", []Row{{1, "a"}}, 0, 0, NoSelection, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.rows)
			rec := &recorder{}
			s.SetObserver(rec)
			s.Select(tt.sel)

			s.DeleteRow()

			if s.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", s.Len(), tt.wantLen)
			}
			if s.Selected() != tt.wantSelected {
				t.Fatalf("Selected() = %d, want %d", s.Selected(), tt.wantSelected)
			}
			if tt.wantSelected == NoSelection {
				if rec.fields != (Fields{}) {
					t.Errorf("fields = %+v, want cleared and disabled", rec.fields)
				}
				return
			}
			if got := s.Rows()[s.Selected()].Text; got != tt.wantSelText {
				t.Errorf("selected text = %q, want %q", got, tt.wantSelText)
			}
		})
	}
}

func TestDeleteRowWithoutSelection(t *testing.T) {
	s := NewStore([]Row{{1, "a"}})
	rec := &recorder{}
	s.SetObserver(rec)
	calls := rec.rowCalls

	s.DeleteRow()

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if rec.rowCalls != calls {
		t.Errorf("observer notified on no-op delete")
	}
}

func TestSelectPopulatesFields(t *testing.T) {
	s := NewStore([]Row{{Time: 1.5, Text: "hello"}})
	rec := &recorder{}
	s.SetObserver(rec)

	s.Select(0)
	want := Fields{Time: "1.500", Text: "hello", Enabled: true}
	if rec.fields != want {
		t.Errorf("fields = %+v, want %+v", rec.fields, want)
	}

	s.Deselect()
	if rec.fields != (Fields{}) {
		t.Errorf("fields after deselect = %+v", rec.fields)
	}

	s.Select(7)
	if s.Selected() != NoSelection {
		t.Errorf("out of range select gave %d", s.Selected())
	}
}

func TestSubmitTime(t *testing.T) {
	s := NewStore([]Row{{1, "a"}, {2, "b"}, {3, "c"}})
	rec := &recorder{}
	s.SetObserver(rec)
	s.Select(0)

	if !s.SubmitTime("2:03.5") {
		t.Fatal("SubmitTime rejected valid input")
	}

	rows := s.Rows()
	assertSorted(t, rows)
	if rows[2] != (Row{123.5, "a"}) {
		t.Errorf("rows = %+v", rows)
	}
	if s.Selected() != 2 {
		t.Errorf("selection did not follow row: %d", s.Selected())
	}
	if rec.fields.Time != "123.500" {
		t.Errorf("time field = %q, want canonical form", rec.fields.Time)
	}
}

func TestSubmitTimeRejectsInvalid(t *testing.T) {
	s := NewStore([]Row{{1, "a"}, {2, "b"}})
	rec := &recorder{}
	s.SetObserver(rec)
	s.Select(1)
	before := s.Rows()
	calls := rec.rowCalls

	for _, in := range []string{"abc", "-5", "1:2:3", ""} {
		if s.SubmitTime(in) {
			t.Errorf("SubmitTime(%q) accepted", in)
		}
	}

	after := s.Rows()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("rows changed: %+v -> %+v", before, after)
		}
	}
	if s.Selected() != 1 || rec.rowCalls != calls {
		t.Errorf("state touched by rejected input")
	}
}

func TestSubmitWithoutSelection(t *testing.T) {
	s := NewStore([]Row{{1, "a"}})
	if s.SubmitTime("5") {
		t.Error("SubmitTime accepted without selection")
	}
	s.SubmitText("x")
	if s.Rows()[0] != (Row{1, "a"}) {
		t.Errorf("row changed without selection: %+v", s.Rows()[0])
	}
}

func TestSubmitTextKeepsOrder(t *testing.T) {
	s := NewStore([]Row{{1, "a"}, {1, "b"}, {2, "c"}})
	s.Select(1)

	s.SubmitText("changed")

	rows := s.Rows()
	if rows[0].Text != "a" || rows[1].Text != "changed" || rows[2].Text != "c" {
		t.Errorf("rows = %+v", rows)
	}
	if s.Selected() != 1 {
		t.Errorf("Selected() = %d, want 1", s.Selected())
	}
}

func TestSubmitTimeIdempotent(t *testing.T) {
	s := NewStore([]Row{{0, "a"}, {10, "b"}})
	s.Select(0)

	s.SubmitTime("1.2346")
	once := s.Rows()[s.Selected()].Time
	s.SubmitTime(s.Fields().Time)
	s.SubmitTime(s.Fields().Time)
	twice := s.Rows()[s.Selected()].Time

	if once != 1.235 || once != twice {
		t.Errorf("times = %v, %v; want 1.235 both", once, twice)
	}
}

func TestStableTieBreak(t *testing.T) {
	s := NewStore([]Row{{1, "first"}, {3, "second"}, {9, "third"}})

	s.Select(0)
	s.SubmitTime("5") // second, first, third
	s.Select(0)
	s.SubmitTime("5") // second stays ahead of first

	for i := 0; i < 3; i++ {
		s.Resort()
	}

	rows := s.Rows()
	if rows[0].Text != "second" || rows[1].Text != "first" {
		t.Errorf("tie order = %q, %q; want second, first", rows[0].Text, rows[1].Text)
	}
	if rows[0].Time != 5 || rows[1].Time != 5 {
		t.Errorf("times = %v, %v", rows[0].Time, rows[1].Time)
	}
}

func TestSortedAfterEveryMutation(t *testing.T) {
	s := NewStore(nil)
	inputs := []string{"5", "1", "3:00", ".5", "bad", "2", "0"}
	for _, in := range inputs {
		s.AddRow()
		assertSorted(t, s.Rows())
		s.SubmitTime(in)
		assertSorted(t, s.Rows())
	}
	if s.Len() != len(inputs) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(inputs))
	}
}

func TestNewStoreSorts(t *testing.T) {
	in := []Row{{3, "c"}, {1, "a"}, {1, "b"}}
	s := NewStore(in)
	rows := s.Rows()
	if rows[0].Text != "a" || rows[1].Text != "b" || rows[2].Text != "c" {
		t.Errorf("rows = %+v", rows)
	}
	if in[0].Text != "c" {
		t.Error("NewStore modified its argument")
	}
}

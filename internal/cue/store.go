// Package cue holds the editable list of timestamped rows and its selection.
package cue

import (
	"cmp"
	"slices"

	"github.com/Zuo-Peng/cuedit/internal/timestamp"
)

// NoSelection is the selected index when no row is selected.
const NoSelection = -1

// Row is one (time, text) entry. Time is in seconds with millisecond precision.
type Row struct {
	Time float64 `yaml:"time"`
	Text string  `yaml:"text"`
}

// Fields is the content of the edit panel.
type Fields struct {
	Time    string
	Text    string
	Enabled bool
}

// Observer receives every change to the rows or the edit fields.
type Observer interface {
	RowsChanged(rows []Row, selected int)
	FieldsChanged(f Fields)
}

// Store is an ordered collection of rows with at most one selected row.
// It is not safe for concurrent use.
type Store struct {
	rows     []Row
	selected int
	observer Observer
}

// NewStore returns a store holding rows, sorted by time, with nothing selected.
func NewStore(rows []Row) *Store {
	s := &Store{
		rows:     slices.Clone(rows),
		selected: NoSelection,
	}
	SortRows(s.rows)
	return s
}

// SetObserver attaches o and pushes the current state to it.
func (s *Store) SetObserver(o Observer) {
	s.observer = o
	s.notifyRows()
	s.notifyFields()
}

// Rows returns a copy of the rows in display order.
func (s *Store) Rows() []Row {
	return slices.Clone(s.rows)
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Selected returns the selected index, or NoSelection.
func (s *Store) Selected() int {
	return s.selected
}

// Fields returns what the edit panel should show for the current selection.
func (s *Store) Fields() Fields {
	if s.selected == NoSelection {
		return Fields{}
	}
	r := s.rows[s.selected]
	return Fields{Time: timestamp.Format(r.Time), Text: r.Text, Enabled: true}
}

// AddRow inserts an empty row after the selection, copying its time, or at the
// top with time zero when nothing is selected. The new row becomes selected.
func (s *Store) AddRow() {
	idx := 0
	row := Row{}
	if s.selected != NoSelection {
		idx = s.selected + 1
		row.Time = s.rows[s.selected].Time
	}
	s.rows = slices.Insert(s.rows, idx, row)
	s.selected = idx
	s.notifyRows()
	s.notifyFields()
}

// DeleteRow removes the selected row and selects its neighbour, preferring the
// previous one. It does nothing without a selection.
func (s *Store) DeleteRow() {
	if s.selected == NoSelection {
		return
	}
	idx := s.selected
	s.rows = slices.Delete(s.rows, idx, idx+1)
	switch {
	case idx > 0:
		s.selected = idx - 1
	case len(s.rows) > 0:
		s.selected = 0
	default:
		s.selected = NoSelection
	}
	s.notifyRows()
	s.notifyFields()
}

// Select selects the row at index i. Out of range indexes clear the selection.
func (s *Store) Select(i int) {
	if i < 0 || i >= len(s.rows) {
		s.Deselect()
		return
	}
	if i == s.selected {
		return
	}
	s.selected = i
	s.notifyRows()
	s.notifyFields()
}

// Deselect clears the selection.
func (s *Store) Deselect() {
	if s.selected == NoSelection {
		return
	}
	s.selected = NoSelection
	s.notifyRows()
	s.notifyFields()
}

// SubmitTime parses input and stores it as the selected row's time.
// Unparseable input is ignored and false is returned.
func (s *Store) SubmitTime(input string) bool {
	if s.selected == NoSelection {
		return false
	}
	t, ok := timestamp.Parse(input)
	if !ok {
		return false
	}
	s.rows[s.selected].Time = t
	s.Resort()
	s.notifyFields()
	return true
}

// SubmitText stores input as the selected row's text.
func (s *Store) SubmitText(input string) {
	if s.selected == NoSelection {
		return
	}
	s.rows[s.selected].Text = input
	s.Resort()
	s.notifyFields()
}

// Resort stable-sorts the rows by time. The selection follows its row.
func (s *Store) Resort() {
	order := make([]int, len(s.rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(s.rows[a].Time, s.rows[b].Time)
	})

	sorted := make([]Row, len(s.rows))
	sel := NoSelection
	for newIdx, oldIdx := range order {
		sorted[newIdx] = s.rows[oldIdx]
		if oldIdx == s.selected {
			sel = newIdx
		}
	}
	s.rows = sorted
	s.selected = sel
	s.notifyRows()
}

// SortRows stable-sorts rows in place by ascending time.
func SortRows(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Compare(a.Time, b.Time)
	})
}

func (s *Store) notifyRows() {
	if s.observer != nil {
		s.observer.RowsChanged(slices.Clone(s.rows), s.selected)
	}
}

func (s *Store) notifyFields() {
	if s.observer != nil {
		s.observer.FieldsChanged(s.Fields())
	}
}

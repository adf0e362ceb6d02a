// ABOUTME: Selection state: query, filtered view, cursor, and multi-select marks
// ABOUTME: Filtering is a stable, case-sensitive AND of whitespace-separated substring tokens

package selector

import (
	"maps"
	"slices"
	"strings"
)

// State is the picker's view model. Values are treated as immutable by
// Update: every transition returns a new State and never writes through the
// previous one's marks.
type State struct {
	views []string // shared, never mutated

	Query    string
	Filtered []int // indices into views, in source order
	Cursor   int   // index into Filtered
	Marks    map[int]bool
	Multi    bool
	Paged    bool
}

// NewState builds the initial state for the given views.
func NewState(views []string, query string, multi, paged bool) State {
	s := State{views: views, Multi: multi, Paged: paged}
	return s.withQuery(query)
}

// Match reports whether view contains every whitespace-separated token of
// query. An empty query matches everything.
func Match(view, query string) bool {
	for _, tok := range strings.Fields(query) {
		if !strings.Contains(view, tok) {
			return false
		}
	}
	return true
}

// Filter returns the indices of views matching query, in order.
func Filter(views []string, query string) []int {
	out := make([]int, 0, len(views))
	for i, v := range views {
		if Match(v, query) {
			out = append(out, i)
		}
	}
	return out
}

// withQuery replaces the query, re-filters, and drops all marks. The cursor
// keeps its position and is clamped by the caller.
func (s State) withQuery(q string) State {
	s.Query = q
	s.Filtered = Filter(s.views, q)
	s.Marks = nil
	return s
}

// clamp keeps the cursor inside the filtered view, and inside the first
// page when paging is off.
func (s State) clamp(pageSize int) State {
	hi := len(s.Filtered) - 1
	if !s.Paged {
		hi = min(hi, pageSize-1)
	}
	s.Cursor = max(0, min(s.Cursor, hi))
	return s
}

func (s State) toggle(i int) State {
	m := maps.Clone(s.Marks)
	if m == nil {
		m = make(map[int]bool)
	}
	if m[i] {
		delete(m, i)
	} else {
		m[i] = true
	}
	s.Marks = m
	return s
}

// Marked reports whether filtered index i is marked.
func (s State) Marked(i int) bool {
	return s.Marks[i]
}

// Selected returns the source indices of the current selection: the entry
// under the cursor in single mode, the marked entries in ascending filtered
// order in multi mode. Empty when the filtered view is empty.
func (s State) Selected() []int {
	if len(s.Filtered) == 0 {
		return nil
	}
	if !s.Multi {
		return []int{s.Filtered[s.Cursor]}
	}
	marked := slices.Sorted(maps.Keys(s.Marks))
	out := make([]int, 0, len(marked))
	for _, i := range marked {
		out = append(out, s.Filtered[i])
	}
	return out
}

// PageSize is the number of entry rows that fit under the query line.
func PageSize(height int) int {
	return max(height-1, 1)
}

// PageStart returns the filtered index of the first row on the cursor's page.
func (s State) PageStart(pageSize int) int {
	return s.Cursor / pageSize * pageSize
}

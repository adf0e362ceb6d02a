// ABOUTME: Entry pairs an opaque payload with its precomputed display text
// ABOUTME: NewEntries projects items through a show func and aligns multi-field views into columns

package selector

import "github.com/stsysd/dore/pkg/tui/width"

// Entry is one candidate row. Payload is returned to the caller untouched;
// View is what the picker draws and filters on.
type Entry[T any] struct {
	Payload T
	View    string
}

// NewEntries builds entries from items. show returns the display fields of
// an item; with more than one field the views are laid out as left-aligned
// columns whose widths are computed once across all items.
func NewEntries[T any](items []T, show func(T) []string) []Entry[T] {
	rows := make([][]string, len(items))
	for i, item := range items {
		fields := show(item)
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = width.Sanitize(f)
		}
		rows[i] = row
	}

	views := layoutColumns(rows)
	entries := make([]Entry[T], len(items))
	for i, item := range items {
		entries[i] = Entry[T]{Payload: item, View: views[i]}
	}
	return entries
}

// Lines is a show func for plain strings.
func Lines(s string) []string {
	return []string{s}
}

func views[T any](entries []Entry[T]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.View
	}
	return out
}

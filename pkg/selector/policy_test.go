// ABOUTME: Tests for the pure key policy
// ABOUTME: Drives key sequences through Update and checks transitions, cursor bounds, and marks

package selector

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stsysd/dore/pkg/tui/input"
	"github.com/stsysd/dore/pkg/tui/key"
)

var (
	keyEnter     = key.Key{Type: key.KeyEnter}
	keyEsc       = key.Key{Type: key.KeyEscape}
	keyCtrlC     = key.Key{Type: key.KeyCtrlC, Ctrl: true}
	keyCtrlSpace = key.Key{Type: key.KeyCtrlSpace, Ctrl: true}
	keyUp        = key.Key{Type: key.KeyUp}
	keyDown      = key.Key{Type: key.KeyDown}
	keyLeft      = key.Key{Type: key.KeyLeft}
	keyRight     = key.Key{Type: key.KeyRight}
	keyBackspace = key.Key{Type: key.KeyBackspace}
)

// apply runs keys through Update until a stop transition.
func apply(s State, pageSize int, keys ...key.Key) (State, Transition) {
	tr := Continue
	for _, k := range keys {
		s, tr = Update(s, k, pageSize)
		if tr != Continue {
			break
		}
	}
	return s, tr
}

func TestUpdate_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		multi     bool
		keys      []key.Key
		want      Transition
		wantQuery string
		wantSel   []int
	}{
		{name: "enter selects first", keys: []key.Key{keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "typed query", keys: append(input.Parse("ba"), keyEnter), want: Accept, wantQuery: "ba", wantSel: []int{1}},
		{name: "two tokens", keys: append(input.Parse("foo bar"), keyEnter), want: Accept, wantQuery: "foo bar", wantSel: []int{4}},
		{name: "no match", keys: append(input.Parse("hoge"), keyEnter), want: Accept, wantQuery: "hoge", wantSel: nil},
		{name: "ctrl+c", keys: []key.Key{keyDown, keyCtrlC}, want: Abort, wantSel: []int{1}},
		{name: "escape", keys: []key.Key{keyEsc}, want: Abort, wantSel: []int{0}},
		{name: "backspace edits", keys: append(input.Parse("bax"), keyBackspace, keyEnter), want: Accept, wantQuery: "ba", wantSel: []int{1}},
		{name: "backspace on empty", keys: []key.Key{keyBackspace, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "ctrl letter ignored", keys: []key.Key{{Type: key.KeyRune, Rune: 'a', Ctrl: true}, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "alt letter ignored", keys: []key.Key{{Type: key.KeyRune, Rune: 'b', Alt: true}, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "tab ignored", keys: []key.Key{{Type: key.KeyTab}, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "ctrl+down ignored", keys: []key.Key{{Type: key.KeyDown, Ctrl: true}, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "ctrl+enter ignored", keys: []key.Key{{Type: key.KeyEnter, Ctrl: true}, keyDown, keyEnter}, want: Accept, wantSel: []int{1}},
		{name: "alt+down ignored", keys: []key.Key{{Type: key.KeyDown, Alt: true}, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "alt+enter ignored", keys: []key.Key{{Type: key.KeyEnter, Alt: true}, keyDown, keyEnter}, want: Accept, wantSel: []int{1}},
		{name: "ctrl+backspace ignored", keys: append(input.Parse("ba"), key.Key{Type: key.KeyBackspace, Ctrl: true}, keyEnter), want: Accept, wantQuery: "ba", wantSel: []int{1}},
		{name: "decoded modified keys ignored", keys: append(input.Parse("\x1b[1;5B\x1b[13;5u\x1b[1;3B\x1b\r\x1b[1;5F"), keyEnter), want: Accept, wantSel: []int{0}},
		{name: "shifted letter typed upper case", keys: append(input.Parse("\x1b[98;2u"), keyEnter), want: Accept, wantQuery: "B", wantSel: nil},
		{name: "ctrl+space in multi still toggles", multi: true, keys: []key.Key{keyCtrlSpace, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "ctrl+space ignored in single", keys: []key.Key{keyCtrlSpace, keyEnter}, want: Accept, wantSel: []int{0}},
		{name: "multi implicit mark", multi: true, keys: []key.Key{keyDown, keyEnter}, want: Accept, wantSel: []int{1}},
		{name: "multi toggles", multi: true, keys: []key.Key{keyCtrlSpace, keyCtrlSpace, keyDown, keyCtrlSpace, keyEnter}, want: Accept, wantSel: []int{0, 1, 3}},
		{name: "multi untoggle", multi: true, keys: []key.Key{keyCtrlSpace, keyUp, keyCtrlSpace, keyDown, keyEnter}, want: Accept, wantSel: []int{2}},
		{name: "multi query clears marks", multi: true, keys: append([]key.Key{keyCtrlSpace, keyCtrlSpace}, append(input.Parse("ba"), keyEnter)...), want: Accept, wantQuery: "ba", wantSel: []int{4}},
		{name: "multi empty view", multi: true, keys: append(input.Parse("hoge"), keyCtrlSpace, keyEnter), want: Accept, wantQuery: "hoge", wantSel: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, tr := apply(NewState(fruits, "", tt.multi, true), 10, tt.keys...)
			if tr != tt.want {
				t.Fatalf("transition = %v, want %v", tr, tt.want)
			}
			if s.Query != tt.wantQuery {
				t.Errorf("query = %q, want %q", s.Query, tt.wantQuery)
			}
			if tr == Abort {
				if len(s.Marks) != 0 {
					t.Errorf("abort left marks %v", s.Marks)
				}
				return
			}
			if diff := cmp.Diff(tt.wantSel, s.Selected()); diff != "" {
				t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate_CursorStaysAfterQueryEdit(t *testing.T) {
	t.Parallel()

	s, _ := apply(NewState(fruits, "", false, true), 10, keyDown, keyDown)
	s, _ = apply(s, 10, input.Parse("ba")...)
	if s.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", s.Cursor)
	}
	s, _ = apply(s, 10, input.Parse("z")...)
	if s.Cursor != 0 {
		t.Errorf("cursor = %d after narrowing to one entry, want 0", s.Cursor)
	}
}

func TestUpdate_Paging(t *testing.T) {
	t.Parallel()

	views := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}
	const pageSize = 3

	tests := []struct {
		name  string
		paged bool
		keys  []key.Key
		want  int
	}{
		{name: "down right", paged: true, keys: []key.Key{keyDown, keyRight}, want: 1 + pageSize},
		{name: "right twice", paged: true, keys: []key.Key{keyRight, keyRight}, want: 6},
		{name: "right clamps", paged: true, keys: []key.Key{keyRight, keyRight, keyRight, keyRight}, want: 8},
		{name: "left clamps", paged: true, keys: []key.Key{keyDown, keyLeft}, want: 0},
		{name: "page down", paged: true, keys: []key.Key{{Type: key.KeyPageDown}}, want: 3},
		{name: "end", paged: true, keys: []key.Key{{Type: key.KeyEnd}}, want: 8},
		{name: "home", paged: true, keys: []key.Key{keyRight, {Type: key.KeyHome}}, want: 0},
		{name: "unpaged right ignored", paged: false, keys: []key.Key{keyRight}, want: 0},
		{name: "unpaged down stops at page", paged: false, keys: []key.Key{keyDown, keyDown, keyDown, keyDown}, want: 2},
		{name: "unpaged end", paged: false, keys: []key.Key{{Type: key.KeyEnd}}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, _ := apply(NewState(views, "", false, tt.paged), pageSize, tt.keys...)
			if s.Cursor != tt.want {
				t.Errorf("cursor = %d, want %d", s.Cursor, tt.want)
			}
		})
	}
}

func TestUpdate_CursorAlwaysInBounds(t *testing.T) {
	t.Parallel()

	moves := []key.Key{keyUp, keyDown, keyLeft, keyRight, keyBackspace, keyCtrlSpace,
		{Type: key.KeyRune, Rune: 'a'}, {Type: key.KeyRune, Rune: 'o'}, {Type: key.KeyRune, Rune: ' '}}
	rng := rand.New(rand.NewPCG(1, 2))

	for _, paged := range []bool{true, false} {
		s := NewState(fruits, "", true, paged)
		for range 2000 {
			k := moves[rng.IntN(len(moves))]
			prevQuery := s.Query
			s, _ = Update(s, k, 2)

			hi := max(len(s.Filtered)-1, 0)
			if s.Cursor < 0 || s.Cursor > hi {
				t.Fatalf("cursor %d out of [0,%d] after %v", s.Cursor, hi, k)
			}
			if s.Query != prevQuery && len(s.Marks) != 0 {
				t.Fatalf("query changed %q -> %q but marks survived", prevQuery, s.Query)
			}
			for i := range s.Marks {
				if i < 0 || i >= len(s.Filtered) {
					t.Fatalf("mark %d outside filtered view of %d", i, len(s.Filtered))
				}
			}
		}
	}
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	before := NewState(fruits, "", true, true).toggle(0)
	_, _ = Update(before, keyCtrlSpace, 10)
	_, _ = Update(before, keyCtrlC, 10)
	if !before.Marked(0) || len(before.Marks) != 1 {
		t.Errorf("input state marks changed to %v", before.Marks)
	}
}

func TestTransition_String(t *testing.T) {
	t.Parallel()

	for tr, want := range map[Transition]string{Continue: "continue", Accept: "accept", Abort: "abort"} {
		if got := tr.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", tr, got, want)
		}
	}
}

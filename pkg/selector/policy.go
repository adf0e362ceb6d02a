// ABOUTME: Key policy: a pure mapping from (State, key) to the next State and a transition
// ABOUTME: Handles abort, accept, mark toggling, query edits, and cursor movement

package selector

import (
	"unicode/utf8"

	"github.com/stsysd/dore/pkg/tui/key"
)

// Transition tells the event loop what to do after a key.
type Transition int

const (
	Continue Transition = iota // keep reading keys
	Accept                     // stop and return State.Selected
	Abort                      // stop with nothing selected
)

func (t Transition) String() string {
	switch t {
	case Accept:
		return "accept"
	case Abort:
		return "abort"
	default:
		return "continue"
	}
}

// Update applies one key to s. pageSize is the number of visible entry rows.
// The returned cursor is always clamped.
func Update(s State, k key.Key, pageSize int) (State, Transition) {
	pageSize = max(pageSize, 1)

	// Ctrl and Alt combinations other than Ctrl+C and Ctrl+Space do nothing.
	if (k.Ctrl || k.Alt) && k.Type != key.KeyCtrlC && k.Type != key.KeyCtrlSpace {
		return s, Continue
	}

	switch k.Type {
	case key.KeyCtrlC, key.KeyEscape:
		s.Marks = nil
		return s, Abort

	case key.KeyEnter:
		if s.Multi && len(s.Marks) == 0 && len(s.Filtered) > 0 {
			s = s.toggle(s.Cursor)
		}
		return s, Accept

	case key.KeyCtrlSpace:
		if !s.Multi || len(s.Filtered) == 0 {
			return s, Continue
		}
		s = s.toggle(s.Cursor)
		s.Cursor++

	case key.KeyBackspace:
		_, size := utf8.DecodeLastRuneInString(s.Query)
		s = s.withQuery(s.Query[:len(s.Query)-size])

	case key.KeyUp:
		s.Cursor--
	case key.KeyDown:
		s.Cursor++
	case key.KeyLeft, key.KeyPageUp:
		if s.Paged {
			s.Cursor -= pageSize
		}
	case key.KeyRight, key.KeyPageDown:
		if s.Paged {
			s.Cursor += pageSize
		}
	case key.KeyHome:
		s.Cursor = 0
	case key.KeyEnd:
		s.Cursor = len(s.Filtered) - 1

	case key.KeyRune:
		if !k.IsPrintable() {
			return s, Continue
		}
		s = s.withQuery(s.Query + string(k.Rune))

	default:
		return s, Continue
	}

	return s.clamp(pageSize), Continue
}

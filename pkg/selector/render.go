// ABOUTME: Renderer: draws one full frame of the picker from State and terminal size
// ABOUTME: Prompt line on row 1, one page of entries below with cursor/marked/plain styling

package selector

import (
	"github.com/stsysd/dore/pkg/tui/screen"
	"github.com/stsysd/dore/pkg/tui/theme"
	"github.com/stsysd/dore/pkg/tui/width"
)

// Frame carries everything a render needs besides the State.
type Frame struct {
	Prompt  string
	Width   int
	Height  int
	Palette theme.Palette
}

// Render appends one frame for s to buf and returns the extended buffer.
// Rows are placed with absolute cursor moves so raw-mode line endings do
// not matter. The cursor is left at the end of the query line.
func Render(buf []byte, s State, f Frame) []byte {
	cols := max(f.Width, 1)
	pageSize := PageSize(f.Height)

	buf = append(buf, screen.Clear...)
	buf = screen.AppendMoveCursor(buf, 1, 1)
	buf = append(buf, f.Palette.Prompt.Apply(width.Truncate(f.Prompt+"> "+s.Query, cols))...)
	buf = append(buf, screen.SaveCursor...)

	start := s.PageStart(pageSize)
	if !s.Paged {
		start = 0
	}
	end := min(start+pageSize, len(s.Filtered))
	for i := start; i < end; i++ {
		line := width.Truncate(s.views[s.Filtered[i]], cols)
		if line == "" {
			line = " "
		}
		switch {
		case i == s.Cursor:
			line = f.Palette.Cursor.Apply(line)
		case s.Marked(i):
			line = f.Palette.Mark.Apply(line)
		}
		buf = screen.AppendMoveCursor(buf, i-start+2, 1)
		buf = append(buf, line...)
	}

	return append(buf, screen.RestoreCursor...)
}

// ABOUTME: ANSI/VT screen-control byte sequences used to draw full-screen frames.
// ABOUTME: Alternate screen buffer, bracketed paste mode, clear, cursor moves and save/restore.

package screen

import "strconv"

// Fixed control sequences.
const (
	EnterAltScreen        = "\x1b[?1049h"
	ExitAltScreen         = "\x1b[?1049l"
	EnableBracketedPaste  = "\x1b[?2004h"
	DisableBracketedPaste = "\x1b[?2004l"
	Clear                 = "\x1b[2J"
	SaveCursor            = "\x1b7"
	RestoreCursor         = "\x1b8"
	ShowCursor            = "\x1b[?25h"
	Reset                 = "\x1b[0m"
)

// MoveCursor returns the sequence placing the cursor at (row, col), 1-indexed.
// Values below 1 are raised to 1.
func MoveCursor(row, col int) string {
	return string(AppendMoveCursor(nil, row, col))
}

// AppendMoveCursor appends the MoveCursor sequence to b.
func AppendMoveCursor(b []byte, row, col int) []byte {
	row = max(row, 1)
	col = max(col, 1)
	b = append(b, "\x1b["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}

// ABOUTME: VisibleWidth and Truncate measure and cut strings by terminal columns
// ABOUTME: Grapheme-aware via uniseg; cell widths from go-runewidth; pure-ASCII fast path

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cells sizes runes as a CJK-locale terminal would, counting East Asian
// ambiguous characters as two columns. Truncated rows then never wrap,
// whatever width the terminal picks for them.
var cells = &runewidth.Condition{EastAsianWidth: true}

// VisibleWidth returns the display width of s. ANSI escape sequences count
// as zero; East Asian wide and ambiguous characters and emoji count as two.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	stripped := StripANSI(s)
	w := 0
	state := -1
	for len(stripped) > 0 {
		var cluster string
		cluster, stripped, _, state = uniseg.FirstGraphemeClusterInString(stripped, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// Truncate returns the longest prefix of s that fits in cols columns. It
// never splits a grapheme cluster and adds no ellipsis, so the result can
// be drawn on one row without wrapping. Escape sequences are kept; if any
// were present and the string was cut, an SGR reset is appended.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) <= cols {
			return s
		}
		return s[:cols]
	}

	var b strings.Builder
	styled := false
	col := 0
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			b.WriteString(s[i:end])
			styled = true
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		cw := graphemeWidth(cluster)
		if col+cw > cols {
			if styled {
				b.WriteString("\x1b[0m")
			}
			return b.String()
		}
		b.WriteString(cluster)
		col += cw
		i += len(s[i:]) - len(rest)
	}
	return b.String()
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// graphemeWidth returns the display width of a single grapheme cluster:
// the width of its base rune, widened to 2 for emoji presentation.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, size := utf8.DecodeRuneInString(cluster)
	w := cells.RuneWidth(r)
	if w == 1 && strings.HasPrefix(cluster[size:], "️") {
		w = 2
	}
	return w
}

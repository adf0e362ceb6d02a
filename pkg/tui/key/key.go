// ABOUTME: Defines the Key event type and ParseKey for terminal keyboard input.
// ABOUTME: Maps printable runes, control bytes, and escape sequences to logical key names with modifiers.

package key

import (
	"fmt"
	"unicode/utf8"
)

// Key is a single decoded keyboard event.
// Type is the logical name; Rune carries the text for printable keys.
// Alt is the meta modifier.
type Key struct {
	Type  KeyType
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the logical key names.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character (or Ctrl+letter when Ctrl is set)
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F) / ^H
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyCtrlC                    // Ctrl+C
	KeyCtrlD                    // Ctrl+D
	KeyCtrlSpace                // Ctrl+Space, Ctrl+@ and Ctrl+` (NUL)
	KeyUnknown                  // Unrecognized input
)

// namedCtrl holds the control bytes that decode to a dedicated KeyType.
// Every other byte in 0x01..0x1A decodes to a Ctrl-modified letter rune.
var namedCtrl = map[byte]Key{
	0x00: {Type: KeyCtrlSpace, Ctrl: true},
	0x03: {Type: KeyCtrlC, Ctrl: true},
	0x04: {Type: KeyCtrlD, Ctrl: true},
	0x08: {Type: KeyBackspace},
	0x09: {Type: KeyTab},
	0x0a: {Type: KeyEnter},
	0x0d: {Type: KeyEnter},
}

// ParseKey parses one complete key's worth of raw terminal input.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

func parseSingleByte(b byte) Key {
	if k, ok := namedCtrl[b]; ok {
		return k
	}
	switch {
	case b == 0x7f:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	case b >= 0x01 && b <= 0x1a:
		return Key{Type: KeyRune, Rune: rune('a' + b - 1), Ctrl: true}
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence resolves ESC-prefixed data: modified CSI keys first,
// then the fixed legacy table, then Alt+<key>.
func parseEscapeSequence(data string) Key {
	if k, ok := parseModifiedCSI(data); ok {
		return k
	}

	if k, ok := legacySequences[data]; ok {
		return k
	}

	// Alt+<key>: ESC followed by exactly one key's worth of input.
	rest := data[1:]
	if rest[0] != 0x1b {
		if k := ParseKey(rest); k.Type != KeyUnknown {
			k.Alt = true
			return k
		}
	}

	return Key{Type: KeyUnknown}
}

// IsPrintable reports whether k carries text with no modifier held.
func (k Key) IsPrintable() bool {
	return k.Type == KeyRune && !k.Ctrl && !k.Alt && k.Rune >= 0x20
}

var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlD:     "Ctrl+D",
	KeyCtrlSpace: "Ctrl+Space",
	KeyUnknown:   "Unknown",
}

// String returns a human-readable representation of the Key for debug logs.
func (k Key) String() string {
	var name string
	if k.Type == KeyRune {
		name = formatRune(k)
	} else if n, ok := keyTypeNames[k.Type]; ok {
		name = n
	} else {
		name = "Unknown"
	}
	if k.Alt {
		name = "Alt+" + name
	}
	return name
}

func formatRune(k Key) string {
	switch {
	case k.Ctrl:
		return fmt.Sprintf("Ctrl+%c", k.Rune-'a'+'A')
	case k.Rune == ' ':
		return "Space"
	}
	return string(k.Rune)
}

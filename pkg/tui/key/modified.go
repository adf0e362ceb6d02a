// ABOUTME: Parser for modifier-carrying CSI sequences (xterm "1;5A" style and CSI u).
// ABOUTME: Resolves Ctrl+Space / Ctrl+` reported as codepoints, and modified arrows and tilde keys.

package key

import (
	"strconv"
	"strings"
	"unicode"
)

// Modifier bitmask, sent on the wire as mask+1.
const (
	modShift = 1 << iota
	modAlt
	modCtrl
)

var tildeKeyTypes = map[int]KeyType{
	3: KeyDelete,
	5: KeyPageUp,
	6: KeyPageDown,
}

var letterKeyTypes = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// parseModifiedCSI handles the three parameterised CSI forms:
//   - CSI <codepoint> ; <mods> u
//   - CSI <number> ; <mods> ~
//   - CSI 1 ; <mods> <letter>
//
// Unmodified forms are left to the legacy table.
func parseModifiedCSI(data string) (Key, bool) {
	if len(data) < 5 || data[1] != '[' {
		return Key{}, false
	}
	body := data[2 : len(data)-1]
	first, modStr, ok := strings.Cut(body, ";")
	if !ok {
		return Key{}, false
	}
	// Drop a trailing ":<event>" (kitty release/repeat reporting).
	modStr, event, _ := strings.Cut(modStr, ":")
	if event == "3" {
		return Key{}, false
	}
	mods, err := strconv.Atoi(modStr)
	if err != nil || mods < 1 {
		return Key{}, false
	}
	mods--

	switch term := data[len(data)-1]; term {
	case 'u':
		cp, err := strconv.Atoi(first)
		if err != nil {
			return Key{}, false
		}
		return codepointKey(rune(cp), mods), true
	case '~':
		n, err := strconv.Atoi(first)
		if err != nil {
			return Key{}, false
		}
		kt, ok := tildeKeyTypes[n]
		if !ok {
			return Key{}, false
		}
		return withModifiers(Key{Type: kt}, mods), true
	default:
		kt, ok := letterKeyTypes[term]
		if !ok || first != "1" {
			return Key{}, false
		}
		return withModifiers(Key{Type: kt}, mods), true
	}
}

// codepointKey maps a CSI u codepoint plus modifiers to a Key. The
// codepoint is the unshifted key, so Shift is applied to letters here.
func codepointKey(cp rune, mods int) Key {
	ctrl := mods&modCtrl != 0
	var k Key
	switch {
	case ctrl && (cp == ' ' || cp == '`' || cp == '@'):
		k = Key{Type: KeyCtrlSpace}
	case ctrl && (cp == 'c' || cp == 'C'):
		k = Key{Type: KeyCtrlC}
	case ctrl && (cp == 'd' || cp == 'D'):
		k = Key{Type: KeyCtrlD}
	case cp == 13:
		k = Key{Type: KeyEnter}
	case cp == 9 && mods&modShift != 0:
		k = Key{Type: KeyBackTab}
	case cp == 9:
		k = Key{Type: KeyTab}
	case cp == 127:
		k = Key{Type: KeyBackspace}
	case cp == 27:
		k = Key{Type: KeyEscape}
	case !ctrl && mods&modShift != 0:
		k = Key{Type: KeyRune, Rune: unicode.ToUpper(cp)}
	default:
		k = Key{Type: KeyRune, Rune: cp}
	}
	return withModifiers(k, mods)
}

func withModifiers(k Key, mods int) Key {
	k.Shift = k.Shift || mods&modShift != 0
	k.Alt = mods&modAlt != 0
	k.Ctrl = mods&modCtrl != 0
	return k
}

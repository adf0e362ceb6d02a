// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

var builtins = map[string]*Theme{
	"default": {
		Name:    "default",
		Palette: DefaultPalette(),
	},
	"dark": {
		Name: "dark",
		Palette: Palette{
			Prompt: NewColor("\x1b[1m\x1b[97m"),
			Cursor: NewColor("\x1b[48;5;238m\x1b[97m"),
			Mark:   NewColor("\x1b[48;5;24m"),
			Error:  NewColor("\x1b[38;5;203m"),
		},
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Prompt: NewColor("\x1b[1m\x1b[30m"),
			Cursor: NewColor("\x1b[48;5;189m\x1b[30m"),
			Mark:   NewColor("\x1b[48;5;194m\x1b[30m"),
			Error:  NewColor("\x1b[38;5;160m"),
		},
	},
	"monochrome": {
		Name: "monochrome",
		Palette: Palette{
			Prompt: NewColor("\x1b[1m"),
			Cursor: NewColor("\x1b[7m"),
			Mark:   NewColor("\x1b[4m"),
			Error:  NewColor("\x1b[1m"),
		},
	},
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"default", "dark", "light", "monochrome"}
}

// ABOUTME: Semantic color theme types: Color, Palette, Theme
// ABOUTME: Color.Apply wraps text in ANSI codes; Palette maps picker roles to colors

package theme

// Color represents a terminal color that can style text.
type Color struct {
	code string
}

// NewColor creates a Color from a raw ANSI escape code.
func NewColor(code string) Color {
	return Color{code: code}
}

// Apply wraps text with the ANSI color code and a reset suffix.
// If the color code is empty, the text is returned unchanged.
func (c Color) Apply(text string) string {
	if c.code == "" {
		return text
	}
	return c.code + text + "\x1b[0m"
}

// Code returns the raw ANSI escape code.
func (c Color) Code() string {
	return c.code
}

// Bold returns a new Color that prepends bold (\x1b[1m) to the code.
func (c Color) Bold() Color {
	return Color{code: "\x1b[1m" + c.code}
}

// Palette holds the colors used by the picker screen and the CLI.
type Palette struct {
	Prompt Color // query line
	Cursor Color // row under the cursor
	Mark   Color // rows marked in multi mode
	Error  Color // CLI error messages
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette returns the stock palette: magenta cursor bar, cyan marks.
func DefaultPalette() Palette {
	return Palette{
		Prompt: NewColor(""),
		Cursor: NewColor("\x1b[45m"),
		Mark:   NewColor("\x1b[46m"),
		Error:  NewColor("\x1b[31m"),
	}
}

// ABOUTME: Tests for theme types: Color.Apply, Bold, and default palette roles
// ABOUTME: Verifies ANSI wrapping, empty color passthrough, and the magenta cursor default

package theme

import (
	"strings"
	"testing"
)

func TestColor_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		text string
		want string
	}{
		{name: "wraps text", code: "\x1b[32m", text: "hello", want: "\x1b[32mhello\x1b[0m"},
		{name: "empty code passes through", code: "", text: "hello", want: "hello"},
		{name: "empty text", code: "\x1b[31m", text: "", want: "\x1b[31m\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewColor(tt.code).Apply(tt.text); got != tt.want {
				t.Errorf("Apply(%q) = %q; want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestColor_Bold(t *testing.T) {
	t.Parallel()
	got := NewColor("\x1b[32m").Bold().Apply("ok")
	if !strings.HasPrefix(got, "\x1b[1m\x1b[32m") {
		t.Errorf("Bold().Apply() = %q; want bold then color prefix", got)
	}
}

func TestDefaultPalette(t *testing.T) {
	t.Parallel()
	p := DefaultPalette()
	if p.Cursor.Code() != "\x1b[45m" {
		t.Errorf("Cursor = %q; want magenta background", p.Cursor.Code())
	}
	if p.Mark.Code() == "" {
		t.Error("Mark must be styled so marked rows are distinguishable")
	}
	if p.Mark.Code() == p.Cursor.Code() {
		t.Error("Mark and Cursor must differ")
	}
}

// ABOUTME: RestoreOnPanic recovers from panics, leaves the alternate screen, and prints the stack trace.
// ABOUTME: RecoverGoroutine does the same for background goroutines without exiting the process.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/stsysd/dore/pkg/tui/screen"
)

// RestoreOnPanic should be deferred at the top of main (or any goroutine
// that owns the terminal). On panic it puts the screen back, exits raw mode,
// prints the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restore(t)
	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of goroutines that run
// while the terminal is in raw mode. It does not exit.
func RecoverGoroutine(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restore(t)
	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}

// restore is best-effort: errors are ignored because a panic is already
// being reported.
func restore(t Terminal) {
	_, _ = t.Write([]byte(screen.Reset + screen.ShowCursor + screen.DisableBracketedPaste + screen.ExitAltScreen))
	_ = t.ExitRawMode()
}

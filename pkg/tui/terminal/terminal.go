// ABOUTME: Defines the Terminal interface: raw mode, size, output, decoded keys, and resize notices.
// ABOUTME: Implementations target the real controlling tty or an in-memory fake for tests.

package terminal

import "github.com/stsysd/dore/pkg/tui/key"

// Terminal abstracts the console a picker draws on and reads keys from.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)

	// Keys delivers decoded key events. The channel is closed when input
	// ends; Err then reports why.
	Keys() <-chan key.Key
	// Resized receives a value after the terminal size changes.
	// Notifications coalesce.
	Resized() <-chan struct{}
	// Err returns the input failure that closed Keys, or nil on clean EOF.
	Err() error
}

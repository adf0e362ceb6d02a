// ABOUTME: Windows stub for ProcessTerminal resize handling.
// ABOUTME: Windows has no SIGWINCH; the size is still re-read on every frame.

//go:build windows

package terminal

import "context"

// watchResize is a no-op on Windows.
// TODO: poll GetConsoleScreenBufferInfo to emit resize notices.
func (t *ProcessTerminal) watchResize(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

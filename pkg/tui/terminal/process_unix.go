// ABOUTME: Unix-specific SIGWINCH handling for ProcessTerminal resize notices.
// ABOUTME: Forwards each SIGWINCH to the Resized channel until the context ends.

//go:build unix

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func (t *ProcessTerminal) watchResize(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			t.notifyResize()
		}
	}
}

// ABOUTME: ProcessTerminal implements Terminal on the controlling tty using golang.org/x/term.
// ABOUTME: Runs the key decoder and the resize watcher under an errgroup tied to Start/Close.

package terminal

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/stsysd/dore/pkg/tui/input"
	"github.com/stsysd/dore/pkg/tui/key"
)

// TTYPath is the controlling terminal device. Standard input is usually the
// data pipe, so keys are read from here instead.
const TTYPath = "/dev/tty"

// ProcessTerminal is a real terminal backed by a tty file.
type ProcessTerminal struct {
	tty   *os.File
	owned bool

	mu       sync.Mutex
	oldState *term.State
	err      error

	keys    chan key.Key
	resized chan struct{}

	cancel context.CancelFunc
	group  *errgroup.Group
}

// Open opens the controlling terminal for reading and writing.
func Open() (*ProcessTerminal, error) {
	tty, err := os.OpenFile(TTYPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", TTYPath, err)
	}
	t := NewProcessTerminal(tty)
	t.owned = true
	return t, nil
}

// NewProcessTerminal wraps an already-open terminal file. The caller keeps
// ownership of tty.
func NewProcessTerminal(tty *os.File) *ProcessTerminal {
	return &ProcessTerminal{
		tty:     tty,
		keys:    make(chan key.Key, 64),
		resized: make(chan struct{}, 1),
	}
}

// Start launches key decoding and resize watching. Call Close to stop them.
func (t *ProcessTerminal) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	t.cancel = cancel
	t.group = g

	g.Go(func() error {
		defer close(t.keys)
		defer RecoverGoroutine(t)
		err := input.NewDecoder(t.tty).Run(gctx, t.keys)
		t.setErr(err)
		return err
	})
	g.Go(func() error {
		defer RecoverGoroutine(t)
		return t.watchResize(gctx)
	})
}

// Close stops background work, restores the terminal mode, and closes the
// tty if Open created it.
func (t *ProcessTerminal) Close() error {
	if t.cancel != nil {
		t.cancel()
	}
	rawErr := t.ExitRawMode()
	var closeErr error
	if t.owned {
		// Closing unblocks the decoder's pending read.
		closeErr = t.tty.Close()
	}
	if t.group != nil {
		_ = t.group.Wait()
	}
	if rawErr != nil {
		return rawErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing tty: %w", closeErr)
	}
	return nil
}

// EnterRawMode switches the tty to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return nil
	}
	return t.control(func(fd int) error {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		t.oldState = state
		return nil
	})
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	return t.control(func(fd int) error {
		if err := term.Restore(fd, t.oldState); err != nil {
			return fmt.Errorf("exiting raw mode: %w", err)
		}
		t.oldState = nil
		return nil
	})
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	err = t.control(func(fd int) error {
		var serr error
		width, height, serr = term.GetSize(fd)
		if serr != nil {
			return fmt.Errorf("getting terminal size: %w", serr)
		}
		return nil
	})
	return width, height, err
}

// Write sends bytes to the tty.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.tty.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to tty: %w", err)
	}
	return n, nil
}

// Keys implements Terminal.
func (t *ProcessTerminal) Keys() <-chan key.Key { return t.keys }

// Resized implements Terminal.
func (t *ProcessTerminal) Resized() <-chan struct{} { return t.resized }

// Err implements Terminal.
func (t *ProcessTerminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *ProcessTerminal) setErr(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
}

// notifyResize queues a resize notice unless one is already pending.
func (t *ProcessTerminal) notifyResize() {
	select {
	case t.resized <- struct{}{}:
	default:
	}
}

// control runs fn with the raw descriptor. Going through SyscallConn keeps
// the file in non-blocking mode, which os.File.Fd would undo.
func (t *ProcessTerminal) control(fn func(fd int) error) error {
	rc, err := t.tty.SyscallConn()
	if err != nil {
		return fmt.Errorf("accessing tty descriptor: %w", err)
	}
	var ferr error
	if err := rc.Control(func(fd uintptr) { ferr = fn(int(fd)) }); err != nil {
		return fmt.Errorf("accessing tty descriptor: %w", err)
	}
	return ferr
}

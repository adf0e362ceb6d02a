// ABOUTME: VirtualTerminal implements Terminal for tests without a real TTY.
// ABOUTME: Captures output, scripts key input, simulates resizes and I/O failures.

package terminal

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/stsysd/dore/pkg/tui/input"
	"github.com/stsysd/dore/pkg/tui/key"
)

// VirtualTerminal is a fake Terminal for unit tests.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	width      int
	height     int
	rawMode    bool
	enterCount int
	exitCount  int
	writeErr   error
	inputErr   error
	closed     bool

	keys    chan key.Key
	resized chan struct{}
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:   width,
		height:  height,
		keys:    make(chan key.Key, 256),
		resized: make(chan struct{}, 1),
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = false
	v.exitCount++
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// Write appends data to the internal buffer, or fails if FailWrites was set.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.writeErr != nil {
		return 0, v.writeErr
	}
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// Keys implements Terminal.
func (v *VirtualTerminal) Keys() <-chan key.Key { return v.keys }

// Resized implements Terminal.
func (v *VirtualTerminal) Resized() <-chan struct{} { return v.resized }

// Err implements Terminal.
func (v *VirtualTerminal) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.inputErr
}

// --- Test helpers (not part of Terminal interface) ---

// Feed queues keys for the reader. It blocks once 256 keys are pending.
func (v *VirtualTerminal) Feed(keys ...key.Key) {
	for _, k := range keys {
		v.keys <- k
	}
}

// Type queues the keys a real terminal would decode from s.
func (v *VirtualTerminal) Type(s string) {
	v.Feed(input.Parse(s)...)
}

// CloseInput ends the key stream; err is what Err reports afterwards.
func (v *VirtualTerminal) CloseInput(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.inputErr = err
	close(v.keys)
}

// FailWrites makes every subsequent Write return err.
func (v *VirtualTerminal) FailWrites(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeErr = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode was called.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// SetSize updates the dimensions and posts a resize notice.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	v.width = width
	v.height = height
	v.mu.Unlock()

	select {
	case v.resized <- struct{}{}:
	default:
	}
}

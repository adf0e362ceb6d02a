// ABOUTME: Decoder turns a raw byte stream from a terminal into a channel of key events.
// ABOUTME: Buffers partial escape sequences, resolves a lone ESC after ~50ms, and types out bracketed paste.

package input

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/stsysd/dore/pkg/tui/key"
)

const (
	readBufSize  = 256
	escTimeout   = 50 * time.Millisecond
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"
)

// Decoder reads from a reader and emits parsed keys.
// A Decoder is owned by the goroutine calling Run.
type Decoder struct {
	reader io.Reader
	buf    []byte
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		reader: r,
		buf:    make([]byte, 0, readBufSize),
	}
}

// Run reads until ctx is cancelled or the reader fails, sending every decoded
// key on out. It returns nil on EOF and on cancellation, and the read error
// otherwise. Run does not close out.
func (d *Decoder) Run(ctx context.Context, out chan<- key.Key) error {
	readCh := make(chan readResult)
	done := make(chan struct{})

	go d.readLoop(readCh, done)
	defer close(done)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			// Nothing completed the sequence in time: resolve what is buffered.
			pending = nil
			if !d.emit(ctx, out, true) {
				return nil
			}
		case result, ok := <-readCh:
			if !ok {
				d.emit(ctx, out, true)
				return nil
			}
			if result.err != nil {
				d.emit(ctx, out, true)
				if errors.Is(result.err, io.EOF) {
					return nil
				}
				return fmt.Errorf("reading input: %w", result.err)
			}
			d.buf = append(d.buf, result.data...)
			if !d.emit(ctx, out, false) {
				return nil
			}
			pending = nil
			if len(d.buf) > 0 {
				pending = time.After(escTimeout)
			}
		}
	}
}

type readResult struct {
	data []byte
	err  error
}

// readLoop continuously reads from the reader and sends data on ch.
// It stops when done is closed.
func (d *Decoder) readLoop(ch chan<- readResult, done <-chan struct{}) {
	defer close(ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := d.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- readResult{data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case ch <- readResult{err: err}:
			case <-done:
			}
			return
		}
	}
}

// emit sends every complete key in the buffer. With final set, incomplete
// input is resolved instead of waited for. Returns false if ctx ended.
func (d *Decoder) emit(ctx context.Context, out chan<- key.Key, final bool) bool {
	for len(d.buf) > 0 {
		consumed, keys, wait := d.tryParse(final)
		if wait {
			return true
		}
		d.buf = d.buf[consumed:]
		for _, k := range keys {
			select {
			case out <- k:
			case <-ctx.Done():
				return false
			}
		}
	}
	return true
}

// Parse decodes a complete input string synchronously. A trailing lone ESC
// is reported as Escape.
func Parse(s string) []key.Key {
	d := &Decoder{buf: []byte(s)}
	var keys []key.Key
	for len(d.buf) > 0 {
		consumed, ks, _ := d.tryParse(true)
		d.buf = d.buf[consumed:]
		keys = append(keys, ks...)
	}
	return keys
}

// tryParse decodes the front of the buffer. It returns the bytes consumed and
// the resulting keys, or wait=true when more input is needed.
func (d *Decoder) tryParse(final bool) (int, []key.Key, bool) {
	if bytes.HasPrefix(d.buf, []byte(bracketStart)) {
		return d.parsePaste(final)
	}

	if d.buf[0] == 0x1b {
		return d.parseEscape(final)
	}

	if !utf8.FullRune(d.buf) {
		if !final {
			return 0, nil, true
		}
		return 1, nil, false
	}
	r, size := utf8.DecodeRune(d.buf)
	if r == utf8.RuneError {
		return 1, nil, false
	}
	return size, []key.Key{key.ParseKey(string(d.buf[:size]))}, false
}

// parseEscape handles ESC-prefixed input: CSI and SS3 sequences as a unit,
// ESC+<key> as Alt, and a lone ESC as Escape.
func (d *Decoder) parseEscape(final bool) (int, []key.Key, bool) {
	escape := []key.Key{{Type: key.KeyEscape}}
	if len(d.buf) == 1 {
		if !final {
			return 0, nil, true
		}
		return 1, escape, false
	}

	switch d.buf[1] {
	case '[':
		n := csiLen(d.buf)
		if n == 0 {
			if !final {
				return 0, nil, true
			}
			return 1, escape, false
		}
		return n, known(key.ParseKey(string(d.buf[:n]))), false
	case 'O':
		if len(d.buf) < 3 {
			if !final {
				return 0, nil, true
			}
			return 1, escape, false
		}
		if k := key.ParseKey(string(d.buf[:3])); k.Type != key.KeyUnknown {
			return 3, []key.Key{k}, false
		}
	case 0x1b:
		return 1, escape, false
	}

	rest := d.buf[1:]
	if !utf8.FullRune(rest) {
		if !final {
			return 0, nil, true
		}
		return 1, escape, false
	}
	_, size := utf8.DecodeRune(rest)
	k := key.ParseKey(string(d.buf[:1+size]))
	if k.Type == key.KeyUnknown {
		return 1, escape, false
	}
	return 1 + size, []key.Key{k}, false
}

// parsePaste types the pasted text out as rune keys. Line breaks and other
// control bytes in the paste are dropped; tabs become spaces.
func (d *Decoder) parsePaste(final bool) (int, []key.Key, bool) {
	body := d.buf[len(bracketStart):]
	end := bytes.Index(body, []byte(bracketEnd))
	consumed := len(d.buf)
	if end < 0 {
		if !final {
			return 0, nil, true
		}
	} else {
		consumed = len(bracketStart) + end + len(bracketEnd)
		body = body[:end]
	}

	var keys []key.Key
	for _, r := range string(body) {
		switch {
		case r == '\t':
			keys = append(keys, key.Key{Type: key.KeyRune, Rune: ' '})
		case r < 0x20 || r == 0x7f || r == utf8.RuneError:
		default:
			keys = append(keys, key.Key{Type: key.KeyRune, Rune: r})
		}
	}
	return consumed, keys, false
}

// csiLen returns the length of the complete CSI sequence at the start of buf,
// or 0 if the final byte has not arrived yet.
func csiLen(buf []byte) int {
	for i := 2; i < len(buf); i++ {
		if b := buf[i]; b >= 0x40 && b <= 0x7e {
			return i + 1
		}
	}
	return 0
}

// known filters out Unknown keys; unrecognised sequences are swallowed whole.
func known(k key.Key) []key.Key {
	if k.Type == key.KeyUnknown {
		return nil
	}
	return []key.Key{k}
}

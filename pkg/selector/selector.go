// ABOUTME: Selector runs the interactive picker loop over a Console
// ABOUTME: Guards raw mode and the alternate screen, selects on keys and resizes, returns payloads

package selector

import (
	"errors"
	"fmt"

	"github.com/stsysd/dore/internal/log"
	"github.com/stsysd/dore/pkg/tui/key"
	"github.com/stsysd/dore/pkg/tui/screen"
	"github.com/stsysd/dore/pkg/tui/theme"
)

// DefaultPrompt labels the query line when Options.Prompt is empty.
const DefaultPrompt = "QUERY"

// Console is the display and input surface the picker needs.
type Console interface {
	Write(p []byte) (n int, err error)
	Size() (width, height int, err error)
	// Keys delivers decoded keys and is closed when input ends.
	Keys() <-chan key.Key
	// Resized fires after the display size changes.
	Resized() <-chan struct{}
	// Err reports why Keys was closed; nil for a clean end of input.
	Err() error
}

// rawModer is implemented by consoles that need raw mode for key-at-a-time input.
type rawModer interface {
	EnterRawMode() error
	ExitRawMode() error
}

// Options configures one picker run.
type Options struct {
	Multi  bool         // allow marking several entries
	Query  string       // initial query
	Prompt string       // query line label, DefaultPrompt when empty
	NoPage bool         // draw only the first page; disables page moves
	Theme  *theme.Theme // nil means theme.Current()
}

// Result is the outcome of Run. Items is empty when nothing was chosen;
// Cancelled tells a user abort apart from an empty accept.
type Result[T any] struct {
	Items     []T
	Cancelled bool
}

// First returns the first selected item, if any.
func (r Result[T]) First() (T, bool) {
	if len(r.Items) == 0 {
		var zero T
		return zero, false
	}
	return r.Items[0], true
}

// Selector is a single-use interactive picker.
type Selector[T any] struct {
	entries []Entry[T]
	views   []string
	console Console
	opts    Options

	width, height int
	buf           []byte
}

// New creates a picker over entries drawing to console.
func New[T any](entries []Entry[T], console Console, opts Options) *Selector[T] {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Theme == nil {
		opts.Theme = theme.Current()
	}
	return &Selector[T]{
		entries: entries,
		views:   views(entries),
		console: console,
		opts:    opts,
	}
}

// Run shows the picker and blocks until the user accepts or aborts, input
// ends, or the console fails. With no entries it returns at once without
// touching the console. The alternate screen (and raw mode, if supported) is
// released on every return path.
func (s *Selector[T]) Run() (res Result[T], err error) {
	if len(s.entries) == 0 {
		return Result[T]{}, nil
	}

	release, err := s.acquire()
	if err != nil {
		return Result[T]{}, err
	}
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	st := NewState(s.views, s.opts.Query, s.opts.Multi, !s.opts.NoPage)
	if err := s.resize(); err != nil {
		return Result[T]{}, err
	}
	st = st.clamp(PageSize(s.height))
	log.Debug("selector: start entries=%d multi=%t size=%dx%d", len(s.entries), s.opts.Multi, s.width, s.height)

	for {
		if err := s.draw(st); err != nil {
			return Result[T]{}, err
		}

		select {
		case k, ok := <-s.console.Keys():
			if !ok {
				if ierr := s.console.Err(); ierr != nil {
					return Result[T]{}, fmt.Errorf("reading keys: %w", ierr)
				}
				log.Debug("selector: input closed")
				return Result[T]{Cancelled: true}, nil
			}
			var tr Transition
			st, tr = Update(st, k, PageSize(s.height))
			switch tr {
			case Accept:
				log.Debug("selector: accept query=%q", st.Query)
				return s.collect(st), nil
			case Abort:
				log.Debug("selector: abort on %s", k)
				return Result[T]{Cancelled: true}, nil
			}

		case <-s.console.Resized():
			if err := s.resize(); err != nil {
				return Result[T]{}, err
			}
			st = st.clamp(PageSize(s.height))
			log.Debug("selector: resized to %dx%d", s.width, s.height)
		}
	}
}

// acquire enters raw mode and the alternate screen, and turns on bracketed
// paste so pasted text arrives as query input. The returned func undoes them
// in reverse order.
func (s *Selector[T]) acquire() (func() error, error) {
	rm, raw := s.console.(rawModer)
	if raw {
		if err := rm.EnterRawMode(); err != nil {
			return nil, fmt.Errorf("entering raw mode: %w", err)
		}
	}
	if _, err := s.console.Write([]byte(screen.EnterAltScreen + screen.EnableBracketedPaste)); err != nil {
		if raw {
			_ = rm.ExitRawMode()
		}
		return nil, fmt.Errorf("entering alternate screen: %w", err)
	}

	return func() error {
		var errs []error
		if _, err := s.console.Write([]byte(screen.DisableBracketedPaste + screen.ExitAltScreen)); err != nil {
			errs = append(errs, fmt.Errorf("leaving alternate screen: %w", err))
		}
		if raw {
			if err := rm.ExitRawMode(); err != nil {
				errs = append(errs, fmt.Errorf("leaving raw mode: %w", err))
			}
		}
		return errors.Join(errs...)
	}, nil
}

func (s *Selector[T]) resize() error {
	w, h, err := s.console.Size()
	if err != nil {
		return fmt.Errorf("querying terminal size: %w", err)
	}
	s.width, s.height = w, h
	return nil
}

func (s *Selector[T]) draw(st State) error {
	s.buf = Render(s.buf[:0], st, Frame{
		Prompt:  s.opts.Prompt,
		Width:   s.width,
		Height:  s.height,
		Palette: s.opts.Theme.Palette,
	})
	if _, err := s.console.Write(s.buf); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func (s *Selector[T]) collect(st State) Result[T] {
	idx := st.Selected()
	items := make([]T, 0, len(idx))
	for _, i := range idx {
		items = append(items, s.entries[i].Payload)
	}
	return Result[T]{Items: items}
}

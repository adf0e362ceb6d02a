// ABOUTME: Loads candidates, runs the selector on the controlling terminal, and prints the choice
// ABOUTME: Plain mode prints lines; NDJSON mode prints the selected records as read

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/stsysd/dore/internal/log"
	"github.com/stsysd/dore/internal/source"
	"github.com/stsysd/dore/pkg/selector"
	"github.com/stsysd/dore/pkg/tui/terminal"
)

func openTTY(ctx context.Context) (selector.Console, func() error, error) {
	t, err := terminal.Open()
	if err != nil {
		return nil, nil, err
	}
	t.Start(ctx)
	return t, t.Close, nil
}

// pick reads candidates from path (stdin when empty) and runs the picker.
func (a *app) pick(ctx context.Context, stdin io.Reader, path string, keys []string, opts selector.Options) error {
	lines, err := a.readSource(stdin, path)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return runPicker(ctx, a, selector.NewEntries(lines, selector.Lines), func(s string) string { return s }, opts)
	}

	recs, err := source.ReadRecords(lines, keys)
	if err != nil {
		return err
	}
	show := func(r source.Record) []string { return r.Fields(keys) }
	return runPicker(ctx, a, selector.NewEntries(recs, show), func(r source.Record) string { return r.Raw }, opts)
}

func (a *app) readSource(stdin io.Reader, path string) ([]string, error) {
	var in io.Reader = stdin
	if path != "" && path != "-" {
		f, err := source.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	if isTerminal(in) {
		return nil, fmt.Errorf("fail to setup source: %w", source.ErrInputIsTTY)
	}
	lines, err := source.ReadLines(in)
	if err != nil {
		return nil, err
	}
	log.Debug("source: %d lines from %q", len(lines), path)
	return lines, nil
}

func runPicker[T any](ctx context.Context, a *app, entries []selector.Entry[T], format func(T) string, opts selector.Options) error {
	if len(entries) == 0 {
		return errNoChoice
	}

	con, release, err := a.openConsole(ctx)
	if err != nil {
		return err
	}
	if t, ok := con.(terminal.Terminal); ok {
		defer terminal.RestoreOnPanic(t)
	}
	res, err := selector.New(entries, con, opts).Run()
	if rerr := release(); rerr != nil && err == nil {
		err = rerr
	}
	if err != nil {
		return err
	}
	if res.Cancelled || len(res.Items) == 0 {
		return errCancelled
	}

	for _, item := range res.Items {
		if _, err := fmt.Fprintln(a.stdout, format(item)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

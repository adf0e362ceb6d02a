// ABOUTME: Root cobra command: flags, config layering, logging setup, and exit-code policy
// ABOUTME: Errors print as "ERROR: ..." on stderr, in the theme's error color on a terminal

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stsysd/dore/internal/config"
	"github.com/stsysd/dore/internal/log"
	"github.com/stsysd/dore/pkg/selector"
	"github.com/stsysd/dore/pkg/tui/theme"
)

// Exit statuses.
const (
	exitOK        = 0
	exitError     = 1
	exitNoChoice  = 2
	exitCancelled = 130
)

var (
	errNoChoice  = errors.New("no choice")
	errCancelled = errors.New("cancelled")
)

// consoleFunc opens the picker's console. The returned func releases it.
type consoleFunc func(ctx context.Context) (selector.Console, func() error, error)

type app struct {
	stdout      io.Writer
	stderr      io.Writer
	openConsole consoleFunc
	logFile     io.Closer

	flags struct {
		jsonKeys []string
		multi    bool
		query    string
		prompt   string
		theme    string
		noPage   bool
		logFile  string
		verbose  bool
	}
}

func newApp(stdout, stderr io.Writer, open consoleFunc) *app {
	return &app{stdout: stdout, stderr: stderr, openConsole: open}
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dore [FILE]",
		Short: "Interactive selector for lines or NDJSON records",
		Long: `Reads candidates from FILE (or standard input), lets you narrow them by
typing, and prints the chosen line(s). With --json-key the input is NDJSON
and the given keys are shown as columns; the selected records are printed
as they were read.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: a.run,
	}

	f := cmd.Flags()
	f.StringSliceVarP(&a.flags.jsonKeys, "json-key", "k", nil, "parse input as NDJSON and show `KEY` (repeatable or comma separated)")
	f.BoolVarP(&a.flags.multi, "multi", "m", false, "select multiple items with Ctrl+Space")
	f.StringVarP(&a.flags.query, "query", "q", "", "initial query")
	f.StringVarP(&a.flags.prompt, "prompt", "p", "", "label shown before the query")
	f.StringVar(&a.flags.theme, "theme", "", "builtin theme name or theme file path")
	f.BoolVar(&a.flags.noPage, "no-page", false, "show only the first screenful of candidates")
	f.StringVar(&a.flags.logFile, "log-file", "", "append debug logs to `PATH`")
	f.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log at debug level")
	return cmd
}

// cliSettings is the settings layer given on the command line.
func (a *app) cliSettings(cmd *cobra.Command) *config.Settings {
	f := cmd.Flags()
	s := &config.Settings{
		Prompt:  a.flags.prompt,
		Theme:   a.flags.theme,
		LogFile: a.flags.logFile,
		Keys:    config.SplitKeys(a.flags.jsonKeys),
	}
	if f.Changed("multi") {
		s.Multi = config.Bool(a.flags.multi)
	}
	if f.Changed("no-page") {
		s.Paged = config.Bool(!a.flags.noPage)
	}
	if a.flags.verbose {
		s.LogLevel = "debug"
	}
	return s
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	file, err := config.Load()
	if err != nil {
		return err
	}
	cfg := config.Merge(file, a.cliSettings(cmd))

	if err := a.setupLogging(cfg); err != nil {
		return err
	}
	th, err := theme.Resolve(cfg.Theme)
	if err != nil {
		return err
	}
	theme.Set(th)
	log.Debug("config: prompt=%q theme=%s multi=%t paged=%t keys=%v", cfg.Prompt, th.Name, *cfg.Multi, *cfg.Paged, cfg.Keys)

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	opts := selector.Options{
		Multi:  *cfg.Multi,
		Query:  a.flags.query,
		Prompt: cfg.Prompt,
		NoPage: !*cfg.Paged,
		Theme:  th,
	}
	return a.pick(cmd.Context(), cmd.InOrStdin(), path, cfg.Keys, opts)
}

func (a *app) setupLogging(cfg *config.Settings) error {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if cfg.LogFile == "" {
		return nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	a.logFile = f
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		log.SetOutput(os.Stderr)
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// execute runs the command and maps its outcome to an exit status.
func execute(a *app, args []string) int {
	return executeCommand(a, a.command(), args)
}

func executeCommand(a *app, cmd *cobra.Command, args []string) int {
	defer a.close()

	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}
	printError(a.stderr, err)

	switch {
	case errors.Is(err, errNoChoice):
		return exitNoChoice
	case errors.Is(err, errCancelled):
		return exitCancelled
	default:
		return exitError
	}
}

func printError(w io.Writer, err error) {
	msg := "ERROR: " + err.Error()
	if isTerminal(w) {
		msg = theme.Current().Palette.Error.Apply(msg)
	}
	fmt.Fprintln(w, msg)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// swiftconcur extracts Swift concurrency warnings from Xcode build output.
//
// Usage:
//
//	xcodebuild build 2>&1 | swiftconcur
//	swiftconcur -f build.log --format markdown
//	xcrun xcresulttool get ... | swiftconcur --threshold 0
//
// Accepts three input encodings, auto-detected:
//   - newline-delimited xcodebuild JSON diagnostics
//   - an xcresult issue bundle (nested JSON)
//   - plain xcodebuild console output
//
// Exit codes: 0 on success, 1 when warnings exceed the threshold, 2 on a
// terminal read/parse error.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/swiftconcur/parser/internal/config"
	"github.com/swiftconcur/parser/internal/gitmeta"
	"github.com/swiftconcur/parser/pkg/baseline"
	"github.com/swiftconcur/parser/pkg/parse"
	"github.com/swiftconcur/parser/pkg/render"
	"github.com/swiftconcur/parser/pkg/warning"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	input         string
	format        string
	filter        string
	threshold     int
	context       int
	baselinePath  string
	writeBaseline bool
	verbose       bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	thresholdExceeded := false

	root := &cobra.Command{
		Use:           "swiftconcur",
		Short:         "Parse Swift concurrency warnings from xcodebuild output",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exceeded, err := execute(cmd, &opts, stdin, stdout, stderr)
			thresholdExceeded = exceeded
			return err
		},
	}

	root.Flags().StringVarP(&opts.input, "file", "f", "-", "input file (use - for stdin)")
	root.Flags().StringVar(&opts.format, "format", "", "output format: auto, json, markdown, slack, terminal")
	root.Flags().StringVarP(&opts.filter, "filter", "F", "", "only keep one warning type: actor_isolation, sendable_conformance, data_race, performance_regression")
	root.Flags().IntVarP(&opts.threshold, "threshold", "t", -1, "fail when warnings exceed this count (-1 disables)")
	root.Flags().IntVarP(&opts.context, "context", "c", config.DefaultContext, "source lines of context around each warning")
	root.Flags().StringVar(&opts.baselinePath, "baseline", "", "baseline file to compare against")
	root.Flags().BoolVar(&opts.writeBaseline, "write-baseline", false, "write this run's warnings as the new baseline")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "swiftconcur: %v\n", err)
		return 2
	}
	if thresholdExceeded {
		return 1
	}
	return 0
}

// execute runs the pipeline: resolve settings, parse, filter, decorate,
// render, and check the threshold. Returns whether the threshold was
// exceeded.
func execute(cmd *cobra.Command, opts *options, stdin io.Reader, stdout, stderr io.Writer) (bool, error) {
	log := newLogger(stderr, opts.verbose)

	settings, err := resolveSettings(cmd, opts)
	if err != nil {
		return false, err
	}

	input, closeInput, err := openInput(opts.input, stdin)
	if err != nil {
		return false, err
	}
	defer closeInput()

	dispatcher := parse.NewDispatcher(settings.Context).WithLogger(log)
	warns, err := dispatcher.Parse(input)
	if err != nil {
		return false, err
	}
	log.Debug("parsed input", "warnings", len(warns))

	warns = warning.FilterByType(warns, warning.Type(settings.Filter))
	run := warning.NewRun(warns)
	gitmeta.Apply(run)

	if settings.Baseline != "" {
		err := compareBaseline(settings.Baseline, run, stderr)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && opts.writeBaseline:
			// Bootstrapping: no baseline yet, but this run writes one.
			log.Debug("no baseline to compare, writing a fresh one", "path", settings.Baseline)
		default:
			return false, err
		}
	}
	if opts.writeBaseline {
		path := settings.Baseline
		if path == "" {
			path = ".swiftconcur-baseline"
		}
		if err := baseline.Save(path, run); err != nil {
			return false, err
		}
		log.Debug("baseline written", "path", path)
	}

	formatter, err := render.New(resolveFormat(settings.Format, stdout))
	if err != nil {
		return false, err
	}
	output, err := formatter.Format(run)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(stdout, output)

	return !warning.WithinThreshold(run.Warnings, settings.Threshold), nil
}

// resolveSettings layers explicit flags over the project config file over
// the defaults.
func resolveSettings(cmd *cobra.Command, opts *options) (config.Settings, error) {
	dir, err := os.Getwd()
	if err != nil {
		return config.Settings{}, fmt.Errorf("resolve working directory: %w", err)
	}
	settings, err := config.Load(dir)
	if err != nil {
		return settings, err
	}

	if cmd.Flags().Changed("context") {
		settings.Context = opts.context
	}
	if cmd.Flags().Changed("threshold") {
		settings.Threshold = opts.threshold
	}
	if cmd.Flags().Changed("filter") {
		settings.Filter = opts.filter
	}
	if cmd.Flags().Changed("baseline") {
		settings.Baseline = opts.baselinePath
	}
	if opts.format != "" {
		settings.Format = opts.format
	}
	return settings, nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// resolveFormat maps "auto" to terminal on a TTY and json when piped.
func resolveFormat(format string, stdout io.Writer) string {
	if format != "auto" && format != "" {
		return format
	}
	if isTTYWriter(stdout) {
		return "terminal"
	}
	return "json"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// compareBaseline reports the diff against a stored baseline on stderr so it
// never pollutes the formatted output stream.
func compareBaseline(path string, run *warning.Run, stderr io.Writer) error {
	base, err := baseline.Load(path)
	if err != nil {
		return err
	}
	diff := base.Compare(run)
	fmt.Fprintf(stderr, "baseline: %d new, %d resolved (baseline of %d from %s)\n",
		len(diff.New), len(diff.Resolved), base.Len(), base.CreatedAt.Format("2006-01-02"))
	return nil
}

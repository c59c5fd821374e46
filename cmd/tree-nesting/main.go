// Package main provides the CLI entrypoint for tree-nesting.
//
// tree-nesting builds the filtered field tree of every root type of a
// mapping, either read from a YAML file or derived from annotated Go
// structs, and reports filter paths that never matched a field.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"tree-nesting/internal/analyze"
	"tree-nesting/internal/diagnostic"
	"tree-nesting/internal/mapping"
	"tree-nesting/internal/schema"
)

// ExitError carries the process exit code of a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	mappingPath string
	pkg         string
	roots       []string
	format      string
	strict      bool
	suggestions int
	logLevel    string
	logFormat   string
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	opts, shouldExit, err := parseArgs(args, errW)
	if err != nil {
		return err
	}

	if shouldExit {
		return nil
	}

	logger := newLogger(opts.logLevel, opts.logFormat, errW)

	mf, err := loadMapping(opts)
	if err != nil {
		return err
	}

	res := mapping.Validate(mf)
	if !res.IsValid() {
		writeDiagnostics(errW, res)
		return fmt.Errorf("invalid mapping: %d error(s)", len(res.Errors))
	}

	cfg := schema.DefaultConfig()
	cfg.Logger = logger
	cfg.SuggestionLimit = opts.suggestions

	indexes, err := schema.NewBuilder(mf, cfg).BuildAll(ctx)
	if err != nil {
		return err
	}

	logger.Info("built indexes", "roots", len(indexes))

	if err := writeOutput(outW, opts.format, mf, indexes); err != nil {
		return err
	}

	for _, idx := range indexes {
		res.Merge(idx.Report())
	}

	writeDiagnostics(errW, res)

	if opts.strict && res.HasWarnings() {
		return fmt.Errorf("strict mode: %d warning(s)", len(res.Warnings))
	}

	return nil
}

func parseArgs(args []string, output io.Writer) (options, bool, error) {
	var opts options

	flagSet := flag.NewFlagSet("tree-nesting", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tree-nesting - builds filtered field trees from nested type mappings.

Usage:
  tree-nesting [options] MAPPING_YAML
  tree-nesting [options] -pkg PATTERN

Options:
`)
		flagSet.PrintDefaults()
	}

	pkgFlag := flagSet.String("pkg", "", "Go package pattern to read annotated structs from instead of a mapping file.")
	rootsFlag := flagSet.String("roots", "", "Comma separated root types. Replaces the roots of the mapping file or the index:root types of -pkg.")
	formatFlag := flagSet.String("format", "text", "Output format. Options: 'text', 'paths', 'arrow', 'arrow-ipc', 'yaml'.")
	strictFlag := flagSet.Bool("strict", false, "Fail when a filter path never matched a field.")
	suggestionsFlag := flagSet.Int("suggestions", schema.DefaultConfig().SuggestionLimit, "Maximum 'did you mean' hints per filter path.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, true, nil
		}

		return opts, false, &ExitError{Code: 2, Message: err.Error()}
	}

	opts = options{
		mappingPath: flagSet.Arg(0),
		pkg:         *pkgFlag,
		roots:       splitList(*rootsFlag),
		format:      strings.ToLower(*formatFlag),
		strict:      *strictFlag,
		suggestions: *suggestionsFlag,
		logLevel:    strings.ToLower(*logLevelFlag),
		logFormat:   strings.ToLower(*logFormatFlag),
	}

	switch {
	case opts.mappingPath == "" && opts.pkg == "":
		flagSet.Usage()
		return opts, true, nil
	case opts.mappingPath != "" && opts.pkg != "":
		return opts, false, &ExitError{Code: 2, Message: "a mapping file and -pkg are mutually exclusive"}
	}

	switch opts.format {
	case "text", "paths", "arrow", "arrow-ipc", "yaml":
	default:
		return opts, false, &ExitError{Code: 2, Message: "invalid format: must be 'text', 'paths', 'arrow', 'arrow-ipc' or 'yaml'"}
	}

	if opts.logFormat != "text" && opts.logFormat != "json" {
		return opts, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return opts, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return opts, false, nil
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func loadMapping(opts options) (*mapping.MappingFile, error) {
	if opts.pkg != "" {
		graph, err := analyze.NewAnalyzer("").LoadPackages(opts.pkg)
		if err != nil {
			return nil, err
		}

		mf, err := graph.ToMapping(opts.roots...)
		if err != nil {
			return nil, err
		}

		if len(opts.roots) > 0 {
			mf.Roots = opts.roots
		}

		return mf, nil
	}

	mf, err := mapping.LoadFile(opts.mappingPath)
	if err != nil {
		return nil, err
	}

	if len(opts.roots) > 0 {
		mf.Roots = opts.roots
	}

	return mf, nil
}

func writeOutput(w io.Writer, format string, mf *mapping.MappingFile, indexes []*schema.Index) error {
	switch format {
	case "yaml":
		data, err := mapping.Marshal(mf)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	case "arrow-ipc":
		if len(indexes) != 1 {
			return fmt.Errorf("arrow-ipc writes a single schema, got %d roots", len(indexes))
		}

		s, err := schema.ToArrow(indexes[0])
		if err != nil {
			return err
		}

		return schema.WriteArrowIPC(w, s, nil)
	}

	for _, idx := range indexes {
		var err error

		switch format {
		case "paths":
			err = idx.WritePaths(w)
		case "arrow":
			var s fmt.Stringer
			if s, err = schema.ToArrow(idx); err == nil {
				_, err = fmt.Fprintln(w, s)
			}
		default:
			err = idx.WriteText(w)
		}

		if err != nil {
			return fmt.Errorf("%s: %w", idx.Root, err)
		}
	}

	return nil
}

func writeDiagnostics(w io.Writer, res *diagnostic.Diagnostics) {
	for _, d := range res.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}

// newLogger creates a logger writing to w without touching the global one.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

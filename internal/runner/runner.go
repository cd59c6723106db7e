package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jacoelho/jaccs/internal/config"
	"github.com/jacoelho/jaccs/internal/exit"
	"github.com/jacoelho/jaccs/internal/formatter"
	"github.com/jacoelho/jaccs/internal/formatter/csv"
	"github.com/jacoelho/jaccs/internal/formatter/jsonl"
	"github.com/jacoelho/jaccs/internal/formatter/yaml"
	"github.com/jacoelho/jaccs/internal/pathing"
	"github.com/jacoelho/jaccs/internal/ratelimit"
	"github.com/jacoelho/jaccs/internal/records"
	"github.com/jacoelho/jaccs/internal/results"
	"github.com/jacoelho/jaccs/internal/source"
)

// Runner streams input documents through the record extractor and writes
// every record with the configured formatter.
type Runner struct {
	config      *config.Config
	extractor   *records.Extractor
	roots       *source.Roots
	rateLimiter *ratelimit.Limiter
	newID       func() string
	input       io.Reader
	output      io.Writer
	errOutput   io.Writer
}

// New compiles the specification and the roots expression.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	extractor, err := records.Compile(cfg.Spec)
	if err != nil {
		return nil, exit.Usagef("Error: invalid specification: %v\n", err)
	}

	roots, err := source.NewRoots(cfg.Roots)
	if err != nil {
		return nil, exit.Usagef("Error: invalid roots expression: %v\n", err)
	}

	return &Runner{
		config:      cfg,
		extractor:   extractor,
		roots:       roots,
		rateLimiter: ratelimit.New(cfg.RateLimit),
		newID:       uuid.NewString,
		input:       os.Stdin,
		output:      os.Stdout,
		errOutput:   os.Stderr,
	}, nil
}

func (r *Runner) SetInput(in io.Reader) {
	r.input = in
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errorWriter(), format, args...)
}

// newFormatter picks the record formatter for the configured output kind.
func (r *Runner) newFormatter(w io.Writer) formatter.Formatter {
	switch r.config.Format {
	case formatter.KindCSV:
		return csv.New(w, r.config.Columns())
	case formatter.KindYAML:
		return yaml.New(w)
	default:
		return jsonl.New(w)
	}
}

// Run processes every input in order and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	inputs := pathing.NormalizeInputPaths(r.config.InputFiles)
	out := r.newFormatter(r.payloadWriter())
	summary := results.NewSummary(len(inputs))

	if r.config.Debug {
		if limit := r.rateLimiter.Limit(); limit > 0 {
			r.logf("Rate limit: %g record(s)/s\n", limit)
		}
	}

	overallStart := time.Now()
	exitCode := exit.CodeSuccess

	for _, path := range inputs {
		name := pathing.DisplayName(path)
		start := time.Now()
		builder := results.NewInputResultBuilder(name)
		err := r.processInput(ctx, path, out, builder)
		summary.Add(builder.WithDuration(time.Since(start)).WithError(err))

		if err == nil {
			continue
		}

		exitCode = exit.CodeFailure
		if ctx.Err() != nil {
			r.logf("\nInterrupted while reading %s\n", name)
			break
		}
		r.logf("Error: %v\n", err)
		if !r.config.KeepGoing {
			break
		}
	}

	summary.SetTotalDuration(time.Since(overallStart))

	if err := out.Flush(); err != nil {
		r.logf("Error writing records: %v\n", err)
		exitCode = exit.CodeFailure
	}

	if r.config.Summary {
		if err := summary.Format(r.config.SummaryFormat, r.errorWriter()); err != nil {
			r.logf("Error formatting summary: %v\n", err)
		}
	}

	if !summary.Succeeded() {
		exitCode = exit.CodeFailure
	}
	return exitCode
}

func (r *Runner) open(path string) (io.ReadCloser, error) {
	if pathing.IsStdin(path) {
		return io.NopCloser(r.input), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return file, nil
}

// processInput extracts records from every document of one input. With
// keep-going a failing document or root is reported and skipped; any other
// failure ends the input.
func (r *Runner) processInput(ctx context.Context, path string, out formatter.Formatter, builder *results.InputResultBuilder) error {
	reader, err := r.open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	name := pathing.DisplayName(path)
	decoder := source.NewDecoder(name, reader)
	for document, err := range decoder.All() {
		if err != nil {
			return err
		}
		builder.AddDocument()

		location := fmt.Sprintf("%s: document %d", name, decoder.Count())
		if err := r.processDocument(ctx, out, builder, location, document); err != nil {
			err = fmt.Errorf("%s: %w", location, err)
			if !r.config.KeepGoing || isFatal(ctx, err) {
				return err
			}
			r.logf("Skipping: %v\n", err)
		}
	}

	return nil
}

func (r *Runner) processDocument(ctx context.Context, out formatter.Formatter, builder *results.InputResultBuilder, location string, document any) error {
	roots, err := r.roots.Of(document)
	if err != nil {
		builder.AddRoot().AddFailure()
		return err
	}

	index := 0
	for root := range roots {
		if err := ctx.Err(); err != nil {
			return err
		}

		builder.AddRoot()
		if err := r.processRoot(ctx, out, root); err != nil {
			builder.AddFailure()
			err = fmt.Errorf("root %d: %w", index, err)
			if !r.config.KeepGoing || isFatal(ctx, err) {
				return err
			}
			r.logf("Skipping: %s: %v\n", location, err)
		} else {
			builder.AddRecord()
		}
		index++
	}

	return nil
}

func (r *Runner) processRoot(ctx context.Context, out formatter.Formatter, root any) error {
	if r.config.Debug {
		r.debug("root", root)
	}

	record, err := r.extractor.Extract(root)
	if err != nil {
		return err
	}

	if r.config.IDField != "" {
		record[r.config.IDField] = r.newID()
	}

	if err := r.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	if r.config.Debug {
		r.debug("record", record)
	}

	if err := out.Format(record); err != nil {
		return &writeError{err: err}
	}
	return nil
}

func (r *Runner) debug(description string, value any) {
	if err := results.FormatDebug(r.errorWriter(), description, value); err != nil {
		r.logf("Error formatting debug output: %v\n", err)
	}
}

// writeError marks a failure of the output device. Keep-going does not
// skip past it.
type writeError struct {
	err error
}

func (e *writeError) Error() string {
	return fmt.Sprintf("write record: %v", e.err)
}

func (e *writeError) Unwrap() error {
	return e.err
}

func isFatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var we *writeError
	return errors.As(err, &we)
}

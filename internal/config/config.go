package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jacoelho/jaccs/internal/exit"
	"github.com/jacoelho/jaccs/internal/formatter"
	"github.com/jacoelho/jaccs/internal/pathing"
	"github.com/jacoelho/jaccs/internal/records"
	"github.com/jacoelho/jaccs/internal/results"
)

var (
	ErrNoArguments          = errors.New("no arguments provided")
	ErrNoFields             = errors.New("no fields specified, use --spec or --field")
	ErrInvalidFieldFormat   = errors.New("field must be in format name=expression")
	ErrEmptyFieldName       = errors.New("field name cannot be empty")
	ErrInvalidDefaultFormat = errors.New("default must be in format name=value")
	ErrUnknownDefaultField  = errors.New("default refers to an unknown field")
	ErrIDFieldConflict      = errors.New("id field collides with a specification field")
	ErrNegativeRateLimit    = errors.New("rate limit cannot be negative")
)

// Config represents the complete configuration for the jaccs tool.
type Config struct {
	// Inputs, read in order; empty means stdin.
	InputFiles []string

	// Extraction
	SpecFile string
	Spec     records.Spec
	Roots    string

	// Output
	Format    formatter.Kind
	IDField   string
	RateLimit float64 // Records per second (0 = unlimited)

	// Failure handling and diagnostics
	KeepGoing     bool
	Debug         bool
	Summary       bool
	SummaryFormat results.OutputFormat
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Spec) == 0 {
		return ErrNoFields
	}

	for _, file := range c.InputFiles {
		if pathing.IsStdin(file) || pathing.NormalizeInputPath(file) == "" {
			continue
		}
		if _, err := os.Stat(pathing.NormalizeInputPath(file)); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	if c.IDField != "" {
		if _, ok := c.Spec[c.IDField]; ok {
			return fmt.Errorf("%w: %s", ErrIDFieldConflict, c.IDField)
		}
	}

	if c.RateLimit < 0 {
		return ErrNegativeRateLimit
	}

	return nil
}

// Columns returns the output field names in order: specification fields
// sorted, then the id field if any.
func (c *Config) Columns() []string {
	columns := c.Spec.Fields()
	if c.IDField != "" {
		columns = append(columns, c.IDField)
	}
	return columns
}

// fieldsFlag implements flag.Value for parsing multiple -field flags.
type fieldsFlag map[string]string

// String returns a string representation of the fields flag for flag.Value interface.
func (f fieldsFlag) String() string {
	var pairs []string
	for _, k := range slices.Sorted(maps.Keys(f)) {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, f[k]))
	}
	return strings.Join(pairs, ",")
}

// Set parses and stores a field in name=expression format for flag.Value interface.
func (f fieldsFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidFieldFormat, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyFieldName
	}

	f[name] = strings.TrimSpace(parts[1])
	return nil
}

// defaultsFlag implements flag.Value for parsing multiple -default flags.
// Values are decoded as JSON when possible and kept as text otherwise.
type defaultsFlag map[string]any

func (d defaultsFlag) String() string {
	var pairs []string
	for _, k := range slices.Sorted(maps.Keys(d)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, d[k]))
	}
	return strings.Join(pairs, ",")
}

func (d defaultsFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidDefaultFormat, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyFieldName
	}

	var decoded any
	if err := json.Unmarshal([]byte(parts[1]), &decoded); err != nil {
		decoded = parts[1]
	}
	d[name] = decoded
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		specFile  = fs.String("spec", "", "Path to YAML or JSON specification file")
		fields    = make(fieldsFlag)
		defaults  = make(defaultsFlag)
		roots     = fs.String("roots", "", "Expression selecting the sequence of roots inside each document")
		format    = fs.String("format", string(formatter.KindJSONL), "Output format: jsonl, csv or yaml")
		idField   = fs.String("id-field", "", "Add a random UUID under this field to every record")
		rateLimit = fs.Float64("rate-limit", 0, "Rate limit in records per second (0 for unlimited)")
		keepGoing = fs.Bool("keep-going", false, "Report failing roots and continue with the next one")
		debug     = fs.Bool("debug", false, "Print every root and record to stderr")
		summary   = fs.Bool("summary", false, "Print a summary to stderr when done")
		summaryAs = fs.String("summary-format", "text", "Summary format: text or json")
	)

	fs.Var(fields, "field", "Field in format name=expression (can be used multiple times)")
	fs.Var(defaults, "default", "Default in format name=value for a field (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	kind, err := formatter.ParseKind(*format)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	summaryFormat, err := results.ParseOutputFormat(*summaryAs)
	if err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	// Command-line fields take precedence over spec file fields
	spec := make(records.Spec)
	if *specFile != "" {
		fileSpec, err := loadSpecFile(*specFile)
		if err != nil {
			return nil, exit.Usagef("Error: failed to load specification: %v\n", err)
		}
		maps.Copy(spec, fileSpec)
	}
	for name, expression := range fields {
		spec[name] = records.Config{Expression: expression}
	}

	for name, value := range defaults {
		entry, ok := spec[name]
		if !ok {
			return nil, exit.Usagef("Error: %v: %s\n\n%s", ErrUnknownDefaultField, name, Usage())
		}
		entry.UseDefault = true
		entry.Default = value
		spec[name] = entry
	}

	config := &Config{
		InputFiles:    fs.Args(),
		SpecFile:      *specFile,
		Spec:          spec,
		Roots:         strings.TrimSpace(*roots),
		Format:        kind,
		IDField:       strings.TrimSpace(*idField),
		RateLimit:     *rateLimit,
		KeepGoing:     *keepGoing,
		Debug:         *debug,
		Summary:       *summary,
		SummaryFormat: summaryFormat,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

func loadSpecFile(filename string) (records.Spec, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	spec, err := records.LoadSpec(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return spec, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jaccs - extract records from JSON documents with path expressions

Usage: jaccs [options] [file1] [file2] ...

Reads a stream of JSON documents from the files in order, or from stdin when
no file is given, and writes one record per root.

Options:
  --spec FILE             YAML or JSON specification file
  --field NAME=EXPR       Field in format name=expression (can be used multiple times)
  --default NAME=VALUE    Default for a field when its key or index is missing (JSON or text)
  --roots EXPR            Expression selecting the sequence of roots inside each document
  --format FORMAT         Output format: jsonl, csv or yaml (default: jsonl)
  --id-field NAME         Add a random UUID under NAME to every record
  --rate-limit N          Rate limit in records per second (0 for unlimited)
  --keep-going            Report failing roots on stderr and continue
  --debug                 Print every root and record to stderr
  --summary               Print a summary to stderr when done
  --summary-format FORMAT Summary format: text or json (default: text)
  -h, --help              Show this help message

Expressions:
  _.a.b[2]                field a, field b, index 2
  _["key name"][-1]       bracketed key, last element
  _.items[1:3]            slice
  $.items[?@.id == "x"]   JSONPath query, first match

Examples:
  jaccs --field place=_.properties.place --roots _.features quakes.json
  jaccs --spec spec.yaml --format csv events.jsonl
  cat events.jsonl | jaccs --spec spec.yaml --default mag=0 --keep-going`
}

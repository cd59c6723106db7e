package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jacoelho/jaccs/internal/exit"
	"github.com/jacoelho/jaccs/internal/formatter"
	"github.com/jacoelho/jaccs/internal/records"
	"github.com/jacoelho/jaccs/internal/results"
)

func TestParse(t *testing.T) {
	tempDir := t.TempDir()
	inputFile := filepath.Join(tempDir, "quakes.json")
	specFile := filepath.Join(tempDir, "spec.yaml")
	badSpecFile := filepath.Join(tempDir, "bad.yaml")

	if err := os.WriteFile(inputFile, []byte(`{"a": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	spec := "place: _.properties.place\nmag:\n  expr: _.properties.mag\n  use_default: true\n  default: none\n"
	if err := os.WriteFile(specFile, []byte(spec), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(badSpecFile, []byte("place:\n  use_default: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		want     *Config
		wantCode int
	}{
		{
			name: "single_field",
			args: []string{"jaccs", "--field", "a=_.a", inputFile},
			want: &Config{
				InputFiles: []string{inputFile},
				Spec:       records.Spec{"a": {Expression: "_.a"}},
				Format:     formatter.KindJSONL,
			},
		},
		{
			name: "stdin_when_no_files",
			args: []string{"jaccs", "--field", "a = _.a "},
			want: &Config{
				InputFiles: []string{},
				Spec:       records.Spec{"a": {Expression: "_.a"}},
				Format:     formatter.KindJSONL,
			},
		},
		{
			name: "all_options",
			args: []string{
				"jaccs",
				"--field", "a=_.a",
				"--field", "b=_.b[0]",
				"--default", "b=3",
				"--roots", "_.features",
				"--format", "csv",
				"--id-field", "id",
				"--rate-limit", "2.5",
				"--keep-going",
				"--debug",
				"--summary",
				"--summary-format", "json",
				inputFile, "-",
			},
			want: &Config{
				InputFiles: []string{inputFile, "-"},
				Spec: records.Spec{
					"a": {Expression: "_.a"},
					"b": {Expression: "_.b[0]", UseDefault: true, Default: 3.0},
				},
				Roots:         "_.features",
				Format:        formatter.KindCSV,
				IDField:       "id",
				RateLimit:     2.5,
				KeepGoing:     true,
				Debug:         true,
				Summary:       true,
				SummaryFormat: results.FormatJSON,
			},
		},
		{
			name: "spec_file_with_override",
			args: []string{"jaccs", "--spec", specFile, "--field", "place=_.place", "--default", "place=unknown", inputFile},
			want: &Config{
				InputFiles: []string{inputFile},
				SpecFile:   specFile,
				Spec: records.Spec{
					"place": {Expression: "_.place", UseDefault: true, Default: "unknown"},
					"mag":   {Expression: "_.properties.mag", UseDefault: true, Default: "none"},
				},
				Format: formatter.KindJSONL,
			},
		},
		{name: "no_arguments", args: []string{}, wantCode: exit.CodeUsage},
		{name: "help", args: []string{"jaccs", "--help"}, wantCode: exit.CodeSuccess},
		{name: "no_fields", args: []string{"jaccs", inputFile}, wantCode: exit.CodeUsage},
		{name: "invalid_field", args: []string{"jaccs", "--field", "nameonly"}, wantCode: exit.CodeUsage},
		{name: "empty_field_name", args: []string{"jaccs", "--field", "=_.a"}, wantCode: exit.CodeUsage},
		{name: "unknown_default", args: []string{"jaccs", "--field", "a=_.a", "--default", "b=1"}, wantCode: exit.CodeUsage},
		{name: "unknown_format", args: []string{"jaccs", "--field", "a=_.a", "--format", "xml"}, wantCode: exit.CodeUsage},
		{name: "missing_input", args: []string{"jaccs", "--field", "a=_.a", filepath.Join(tempDir, "nope.json")}, wantCode: exit.CodeUsage},
		{name: "missing_spec", args: []string{"jaccs", "--spec", filepath.Join(tempDir, "nope.yaml")}, wantCode: exit.CodeUsage},
		{name: "invalid_spec", args: []string{"jaccs", "--spec", badSpecFile}, wantCode: exit.CodeUsage},
		{name: "id_field_conflict", args: []string{"jaccs", "--field", "a=_.a", "--id-field", "a"}, wantCode: exit.CodeUsage},
		{name: "unknown_summary_format", args: []string{"jaccs", "--field", "a=_.a", "--summary-format", "xml"}, wantCode: exit.CodeUsage},
		{name: "negative_rate_limit", args: []string{"jaccs", "--field", "a=_.a", "--rate-limit", "-1"}, wantCode: exit.CodeUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, result := Parse(tt.args)
			if tt.want == nil {
				if result == nil {
					t.Fatalf("Parse() result = nil, want exit code %d", tt.wantCode)
				}
				if result.ExitCode != tt.wantCode {
					t.Fatalf("Parse() exit code = %d, want %d (%s)", result.ExitCode, tt.wantCode, result.Message)
				}
				return
			}

			if result != nil {
				t.Fatalf("Parse() unexpected exit result: %s", result.Message)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColumns(t *testing.T) {
	t.Parallel()

	c := &Config{
		Spec:    records.Spec{"b": {Expression: "_.b"}, "a": {Expression: "_.a"}},
		IDField: "id",
	}

	if got, want := c.Columns(), []string{"a", "b", "id"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}
}

func TestFieldsFlag(t *testing.T) {
	t.Parallel()

	f := make(fieldsFlag)
	if err := f.Set("b=_.b"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := f.Set("a=_['x=y']"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got, want := f.String(), "a=_['x=y'],b=_.b"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestDefaultsFlag(t *testing.T) {
	t.Parallel()

	d := make(defaultsFlag)
	for _, value := range []string{"n=1.5", "s=text", "q=\"quoted\"", "z=null", "l=[1,2]"} {
		if err := d.Set(value); err != nil {
			t.Fatalf("Set(%q) error = %v", value, err)
		}
	}

	want := defaultsFlag{
		"n": 1.5,
		"s": "text",
		"q": "quoted",
		"z": nil,
		"l": []any{1.0, 2.0},
	}
	if !reflect.DeepEqual(d, want) {
		t.Fatalf("defaults = %v, want %v", d, want)
	}

	if err := d.Set("novalue"); err == nil {
		t.Fatalf("Set(novalue) error = nil, want format error")
	}
}

func TestUsageMentionsEveryFlag(t *testing.T) {
	t.Parallel()

	usage := Usage()
	for _, flag := range []string{"--spec", "--field", "--default", "--roots", "--format", "--id-field", "--rate-limit", "--keep-going", "--debug", "--summary", "--summary-format"} {
		if !strings.Contains(usage, flag) {
			t.Fatalf("Usage() missing %s", flag)
		}
	}
}

package results

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// OutputFormat represents the output format for a summary.
type OutputFormat int

const (
	FormatText OutputFormat = iota
	FormatJSON
)

// ParseOutputFormat maps a format name to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unsupported summary format %q (expected text or json)", name)
	}
}

// Format formats the summary in the specified format to the given writer.
func (s *Summary) Format(format OutputFormat, w io.Writer) error {
	switch format {
	case FormatJSON:
		return s.formatJSON(w)
	case FormatText:
		fallthrough
	default:
		return s.formatText(w)
	}
}

// FormatDebug writes a labelled JSON rendering of value, used to trace
// roots and records.
func FormatDebug(w io.Writer, description string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", description, err)
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", description, data)
	return err
}

func (s *Summary) formatText(w io.Writer) error {
	for _, input := range s.InputResults {
		status := "Success"
		if input.Error != nil {
			status = fmt.Sprintf("Failed: %v", input.Error)
		} else if input.Failures > 0 {
			status = fmt.Sprintf("%d failing root(s)", input.Failures)
		}
		_, err := fmt.Fprintf(w, "%s: %s (%d document(s), %d record(s) in %d ms)\n",
			input.Name, status, input.Documents, input.Records, input.Duration.Milliseconds())
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "--------------------------------------------------------------------------------"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Inputs:    %d (%d failed)\n", s.Inputs, s.FailedInputs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Documents: %d\n", s.Documents); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Records:   %d (%.2f/s)\n", s.Records, s.RecordsPerSecond()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Failures:  %d of %d root(s) (%.1f%%)\n", s.Failures, s.Roots, s.FailurePercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Duration:  %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}

	return nil
}

type jsonInputResult struct {
	Name                 string `json:"name"`
	Documents            int    `json:"documents"`
	Roots                int    `json:"roots"`
	Records              int    `json:"records"`
	Failures             int    `json:"failures"`
	DurationMilliseconds int64  `json:"duration_ms"`
	Success              bool   `json:"success"`
	Error                string `json:"error,omitempty"`
}

type jsonSummary struct {
	InputResults         []jsonInputResult `json:"inputs"`
	Inputs               int               `json:"input_count"`
	FailedInputs         int               `json:"failed_inputs"`
	Documents            int               `json:"documents"`
	Roots                int               `json:"roots"`
	Records              int               `json:"records"`
	Failures             int               `json:"failures"`
	DurationMilliseconds int64             `json:"duration_ms"`
	RecordsPerSecond     float64           `json:"records_per_second"`
	FailurePercentage    float64           `json:"failure_percentage"`
}

func (s *Summary) toJSONSummary() jsonSummary {
	inputs := make([]jsonInputResult, 0, len(s.InputResults))
	for _, result := range s.InputResults {
		item := jsonInputResult{
			Name:                 result.Name,
			Documents:            result.Documents,
			Roots:                result.Roots,
			Records:              result.Records,
			Failures:             result.Failures,
			DurationMilliseconds: result.Duration.Milliseconds(),
			Success:              result.Error == nil && result.Failures == 0,
		}
		if result.Error != nil {
			item.Error = result.Error.Error()
		}
		inputs = append(inputs, item)
	}

	return jsonSummary{
		InputResults:         inputs,
		Inputs:               s.Inputs,
		FailedInputs:         s.FailedInputs,
		Documents:            s.Documents,
		Roots:                s.Roots,
		Records:              s.Records,
		Failures:             s.Failures,
		DurationMilliseconds: s.TotalDuration.Milliseconds(),
		RecordsPerSecond:     s.RecordsPerSecond(),
		FailurePercentage:    s.FailurePercentage(),
	}
}

func (s *Summary) formatJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s.toJSONSummary())
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/jacoelho/jaccs/internal/records"
)

// Formatter writes extracted records to an output device.
// Implementations may buffer; Flush must be called once all records are written.
type Formatter interface {
	Format(record records.Record) error
	Flush() error
}

// Kind names an output format.
type Kind string

const (
	KindJSONL Kind = "jsonl"
	KindCSV   Kind = "csv"
	KindYAML  Kind = "yaml"
)

// ParseKind validates a format name.
func ParseKind(name string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(name))); kind {
	case KindJSONL, KindCSV, KindYAML:
		return kind, nil
	case "json", "ndjson":
		return KindJSONL, nil
	case "yml":
		return KindYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected jsonl, csv or yaml)", name)
	}
}

package yaml

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jacoelho/jaccs/internal/formatter"
	"github.com/jacoelho/jaccs/internal/records"
)

// Formatter writes each record as its own YAML document.
type Formatter struct {
	writer io.Writer
}

func New(writer io.Writer) formatter.Formatter {
	return &Formatter{writer: writer}
}

// numberLiteral writes json.Number values as plain YAML numbers with their
// original digits instead of quoted strings.
func numberLiteral(n json.Number) ([]byte, error) {
	return []byte(n.String()), nil
}

func (f *Formatter) Format(record records.Record) error {
	payload, err := yaml.MarshalWithOptions(map[string]any(record), yaml.CustomMarshaler(numberLiteral))
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}

	if _, err := io.WriteString(f.writer, "---\n"); err != nil {
		return err
	}
	_, err = f.writer.Write(payload)
	return err
}

func (f *Formatter) Flush() error {
	return nil
}

package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jacoelho/jaccs/internal/formatter"
	"github.com/jacoelho/jaccs/internal/number"
	"github.com/jacoelho/jaccs/internal/records"
)

// Formatter writes records as CSV rows with a fixed column order.
type Formatter struct {
	writer        *csv.Writer
	columns       []string
	headerWritten bool
}

// New creates a CSV formatter. The header row lists columns and is written
// before the first record.
func New(writer io.Writer, columns []string) formatter.Formatter {
	return &Formatter{
		writer:  csv.NewWriter(writer),
		columns: columns,
	}
}

func (f *Formatter) Format(record records.Record) error {
	if !f.headerWritten {
		if err := f.writer.Write(f.columns); err != nil {
			return err
		}
		f.headerWritten = true
	}

	row := make([]string, len(f.columns))
	for i, column := range f.columns {
		cell, err := formatCell(record[column])
		if err != nil {
			return fmt.Errorf("column %q: %w", column, err)
		}
		row[i] = cell
	}

	return f.writer.Write(row)
}

func (f *Formatter) Flush() error {
	f.writer.Flush()
	return f.writer.Error()
}

// formatCell renders scalars as plain text and containers as JSON.
func formatCell(value any) (string, error) {
	switch current := value.(type) {
	case nil:
		return "", nil
	case string:
		return current, nil
	case bool:
		return strconv.FormatBool(current), nil
	}

	if text, ok := number.Format(value); ok {
		return text, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

package jsonl

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"
	"github.com/jacoelho/jaccs/internal/formatter"
	"github.com/jacoelho/jaccs/internal/records"
)

// Formatter writes one JSON object per line.
type Formatter struct {
	buf     *bufio.Writer
	encoder *json.Encoder
}

// New creates a JSON lines formatter writing to writer.
func New(writer io.Writer) formatter.Formatter {
	buf := bufio.NewWriter(writer)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	return &Formatter{
		buf:     buf,
		encoder: encoder,
	}
}

// Format encodes the record with keys in sorted order.
func (f *Formatter) Format(record records.Record) error {
	return f.encoder.Encode(record)
}

func (f *Formatter) Flush() error {
	return f.buf.Flush()
}

// Package source decodes streams of JSON documents into JSON-shaped values.
package source

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/goccy/go-json"
)

// ErrRootsNotSequence indicates a roots expression selected something other
// than a sequence.
var ErrRootsNotSequence = errors.New("roots expression must select a sequence")

// Decoder reads concatenated JSON values, such as JSON lines, one at a time.
type Decoder struct {
	name    string
	decoder *json.Decoder
	count   int
}

// NewDecoder creates a decoder over r. The name identifies the input in
// error messages. Numbers are kept as json.Number so integers of any size
// survive unchanged.
func NewDecoder(name string, r io.Reader) *Decoder {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	return &Decoder{
		name:    name,
		decoder: decoder,
	}
}

// Next returns the next document, or io.EOF once the input is exhausted.
func (d *Decoder) Next() (any, error) {
	var value any
	if err := d.decoder.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%s: document %d: %w", d.name, d.count+1, err)
	}
	d.count++
	return value, nil
}

// Count returns the number of documents decoded so far.
func (d *Decoder) Count() int {
	return d.count
}

// All yields every remaining document. A decoding error is yielded once and
// ends the sequence.
func (d *Decoder) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for {
			value, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(value, err) || err != nil {
				return
			}
		}
	}
}

package records

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jacoelho/jaccs/internal/expr"
)

// Record maps field names to extracted values.
type Record map[string]any

type field struct {
	name     string
	accessor *expr.Accessor
}

// Extractor holds one compiled accessor per specification field.
type Extractor struct {
	fields []field
}

// Compile builds every accessor in spec once. The returned Extractor can be
// reused for any number of roots, concurrently if needed.
func Compile(spec Spec) (*Extractor, error) {
	fields := make([]field, 0, len(spec))
	for _, name := range spec.Fields() {
		accessor, err := spec[name].Accessor()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, field{name: name, accessor: accessor})
	}

	return &Extractor{fields: fields}, nil
}

// Fields returns the field names in sorted order.
func (e *Extractor) Fields() []string {
	names := make([]string, len(e.fields))
	for i, f := range e.fields {
		names[i] = f.name
	}
	return names
}

// Extract evaluates every field against root. The first failing field
// aborts the record.
func (e *Extractor) Extract(root any) (Record, error) {
	record := make(Record, len(e.fields))
	for _, f := range e.fields {
		value, err := f.accessor.Evaluate(root)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.name, err)
		}
		record[f.name] = value
	}
	return record, nil
}

// All lazily yields one record per root, in order. On failure it yields the
// error once and stops.
func (e *Extractor) All(roots iter.Seq[any]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for root := range roots {
			record, err := e.Extract(root)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}

// Build compiles spec and returns the lazy record sequence over roots.
// The sequence can be ranged over again only if roots can.
func Build(spec Spec, roots iter.Seq[any]) (iter.Seq2[Record, error], error) {
	extractor, err := Compile(spec)
	if err != nil {
		return nil, err
	}
	return extractor.All(roots), nil
}

// Collect extracts one record for each element of roots.
func Collect(spec Spec, roots []any) ([]Record, error) {
	seq, err := Build(spec, slices.Values(roots))
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(roots))
	for record, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

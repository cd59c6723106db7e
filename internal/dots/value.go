package dots

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// Kind classifies a JSON-shaped value.
type Kind uint8

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// KindOf classifies v. Only map[string]any and []any are containers;
// strings, numbers, booleans, nil and any other type are scalars.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// Value is a read-only view over one JSON-shaped value.
type Value struct {
	data any
	kind Kind
}

// Wrap returns a view over v. The shape of v is not validated.
func Wrap(v any) Value {
	return Value{data: v, kind: KindOf(v)}
}

// Unwrap returns the underlying value itself, not a copy.
func (v Value) Unwrap() any {
	return v.data
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsContainer reports whether the value is a mapping or a sequence.
func (v Value) IsContainer() bool {
	return v.kind != KindScalar
}

// Get applies a single access step.
//
// Field requires a mapping. Name and Index look up a mapping by key; JSON
// keys are text so an Index never matches one. Index and Slice address
// sequences. Anything applied to a scalar is unsupported.
func (v Value) Get(k Key) (Value, error) {
	if k.kind == keyField && v.kind != KindMapping {
		return Value{}, accessError(v.kind, k, fmt.Errorf("%w: field access requires a mapping", ErrUnsupportedAccess))
	}

	switch v.kind {
	case KindMapping:
		return v.getMapping(k)
	case KindSequence:
		return v.getSequence(k)
	default:
		return Value{}, accessError(v.kind, k, ErrUnsupportedAccess)
	}
}

// Field is attribute-style access, shorthand for Get(Field(name)).
func (v Value) Field(name string) (Value, error) {
	return v.Get(Field(name))
}

// Key is index-style access by name, shorthand for Get(Name(name)).
func (v Value) Key(name string) (Value, error) {
	return v.Get(Name(name))
}

// Index is index-style access by position, shorthand for Get(Index(i)).
func (v Value) Index(i int) (Value, error) {
	return v.Get(Index(i))
}

// Slice is shorthand for Get(Slice(span)).
func (v Value) Slice(span Span) (Value, error) {
	return v.Get(Slice(span))
}

func (v Value) getMapping(k Key) (Value, error) {
	m := v.data.(map[string]any)

	switch k.kind {
	case keyField, keyName:
		item, ok := m[k.name]
		if !ok {
			return Value{}, accessError(v.kind, k, ErrMissingKey)
		}
		return Wrap(item), nil
	case keyIndex:
		return Value{}, accessError(v.kind, k, ErrMissingKey)
	default:
		return Value{}, accessError(v.kind, k, fmt.Errorf("%w: cannot slice a mapping", ErrUnsupportedAccess))
	}
}

func (v Value) getSequence(k Key) (Value, error) {
	s := v.data.([]any)

	switch k.kind {
	case keyIndex:
		i := k.index
		if i < 0 {
			i += len(s)
		}
		if i < 0 || i >= len(s) {
			return Value{}, accessError(v.kind, k, fmt.Errorf("%w: length %d", ErrIndexOutOfRange, len(s)))
		}
		return Wrap(s[i]), nil
	case keySlice:
		start, stop, step := k.span.bounds(len(s))
		out := make([]any, 0)
		if step > 0 {
			for i := start; i < stop; i += step {
				out = append(out, s[i])
			}
		} else {
			for i := start; i > stop; i += step {
				out = append(out, s[i])
			}
		}
		return Wrap(out), nil
	default:
		return Value{}, accessError(v.kind, k, fmt.Errorf("%w: sequence indices must be integers", ErrUnsupportedAccess))
	}
}

// Equal reports whether both views hold structurally equal values.
func (v Value) Equal(other Value) bool {
	return reflect.DeepEqual(v.data, other.data)
}

func (v Value) String() string {
	encoded, err := json.Marshal(v.data)
	if err != nil {
		return fmt.Sprintf("Dots(%v)", v.data)
	}
	return "Dots(" + string(encoded) + ")"
}

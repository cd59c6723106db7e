package dots

import (
	"strconv"
	"strings"
)

type keyKind uint8

const (
	keyField keyKind = iota
	keyName
	keyIndex
	keySlice
)

// Key is a single access step: an attribute-style field, a bracketed name,
// an integer index or a slice.
type Key struct {
	kind  keyKind
	name  string
	index int
	span  Span
}

// Field is attribute-style access. It only applies to mappings.
func Field(name string) Key {
	return Key{kind: keyField, name: name}
}

// Name is bracketed key access on a mapping.
func Name(name string) Key {
	return Key{kind: keyName, name: name}
}

// Index is bracketed integer access. Negative values count from the end.
func Index(i int) Key {
	return Key{kind: keyIndex, index: i}
}

// Slice is bracketed slice access on a sequence.
func Slice(span Span) Key {
	return Key{kind: keySlice, span: span}
}

// String renders the key the way it is written in a path expression.
func (k Key) String() string {
	switch k.kind {
	case keyField:
		return "." + k.name
	case keyName:
		return "[" + strconv.Quote(k.name) + "]"
	case keyIndex:
		return "[" + strconv.Itoa(k.index) + "]"
	case keySlice:
		return "[" + k.span.String() + "]"
	default:
		return "[?]"
	}
}

// Span describes a slice with optional bounds. A zero Step means 1.
type Span struct {
	Start    int
	End      int
	Step     int
	HasStart bool
	HasEnd   bool
}

func (s Span) String() string {
	var b strings.Builder
	if s.HasStart {
		b.WriteString(strconv.Itoa(s.Start))
	}
	b.WriteByte(':')
	if s.HasEnd {
		b.WriteString(strconv.Itoa(s.End))
	}
	if s.Step != 0 && s.Step != 1 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.Step))
	}
	return b.String()
}

// bounds resolves the span against a sequence of length n, clamping
// out of range bounds instead of failing.
func (s Span) bounds(n int) (start, stop, step int) {
	step = s.Step
	if step == 0 {
		step = 1
	}
	// A step longer than the sequence selects at most one element, so
	// clamping it keeps the result and stops the index from overflowing.
	if limit := max(n, 1); step > limit {
		step = limit
	} else if step < -limit {
		step = -limit
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}

	clamp := func(v int) int {
		if v < 0 {
			v += n
			if v < lower {
				v = lower
			}
			return v
		}
		if v > upper {
			v = upper
		}
		return v
	}

	if s.HasStart {
		start = clamp(s.Start)
	} else if step > 0 {
		start = lower
	} else {
		start = upper
	}

	if s.HasEnd {
		stop = clamp(s.End)
	} else if step > 0 {
		stop = upper
	} else {
		stop = lower
	}

	return start, stop, step
}

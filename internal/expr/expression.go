package expr

import (
	"strings"

	"github.com/jacoelho/jaccs/internal/dots"
	"github.com/theory/jsonpath"
)

// Expression is a compiled path expression. It holds no mutable state and
// may be evaluated concurrently.
type Expression struct {
	text  string
	steps []dots.Key
	path  *jsonpath.Path
}

// Source is anything Compile accepts: expression text or an expression that
// is already compiled.
type Source interface {
	string | *Expression
}

// Compile parses expression text. Compiling an *Expression returns it
// unchanged.
//
// Text starting with "$" is compiled as an RFC 9535 JSONPath query; any other
// text must be "_" followed by field, index, key and slice steps:
//
//	_.features[0].properties["place name"]
//	_.items[-1]
//	_.items[1:-1:2]
func Compile[S Source](src S) (*Expression, error) {
	switch current := any(src).(type) {
	case *Expression:
		if current == nil {
			return nil, expressionError("expression is nil")
		}
		return current, nil
	case string:
		return compileText(current)
	default:
		return nil, expressionError("unsupported source %T", src)
	}
}

// MustCompile panics if the expression cannot be compiled.
func MustCompile[S Source](src S) *Expression {
	compiled, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return compiled
}

func compileText(text string) (*Expression, error) {
	if isJSONPath(text) {
		path, err := compileJSONPath(text)
		if err != nil {
			return nil, err
		}
		return &Expression{text: text, path: path}, nil
	}

	steps, err := parse(text)
	if err != nil {
		return nil, err
	}

	return &Expression{text: text, steps: steps}, nil
}

// String returns the source text of the expression.
func (e *Expression) String() string {
	return e.text
}

// Canonical renders the parsed steps, normalising whitespace and quoting.
func (e *Expression) Canonical() string {
	if e.path != nil {
		return e.path.String()
	}

	var b strings.Builder
	b.WriteString(RootName)
	for _, step := range e.steps {
		b.WriteString(step.String())
	}
	return b.String()
}

// Eval applies the expression to root. Containers in the result are returned
// as the raw mapping or sequence, never as a wrapper.
//
// Lookup failures wrap dots.ErrMissingKey, dots.ErrIndexOutOfRange or
// dots.ErrUnsupportedAccess.
func (e *Expression) Eval(root any) (any, error) {
	if e.path != nil {
		return selectFirst(e.path, root)
	}

	value, err := e.Walk(dots.Wrap(root))
	if err != nil {
		return nil, err
	}
	return value.Unwrap(), nil
}

// Walk applies every step to an already wrapped value.
func (e *Expression) Walk(root dots.Value) (dots.Value, error) {
	if e.path != nil {
		raw, err := selectFirst(e.path, root.Unwrap())
		if err != nil {
			return dots.Value{}, err
		}
		return dots.Wrap(raw), nil
	}

	current := root
	for _, step := range e.steps {
		next, err := current.Get(step)
		if err != nil {
			return dots.Value{}, err
		}
		current = next
	}
	return current, nil
}

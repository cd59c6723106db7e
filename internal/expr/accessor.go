package expr

import "github.com/jacoelho/jaccs/internal/dots"

// Option configures an Accessor.
type Option func(*Accessor)

// WithDefault makes the accessor return value when evaluation fails with a
// missing key or an out of range index.
func WithDefault(value any) Option {
	return func(a *Accessor) {
		a.useDefault = true
		a.def = value
	}
}

// Accessor pairs a compiled expression with its default policy.
type Accessor struct {
	expr       *Expression
	identity   bool
	useDefault bool
	def        any
}

// NewAccessor compiles src into an Accessor. The expression "_" is never
// compiled; its accessor returns the root unchanged.
func NewAccessor[S Source](src S, opts ...Option) (*Accessor, error) {
	a := &Accessor{}
	for _, opt := range opts {
		opt(a)
	}

	if text, ok := any(src).(string); ok && text == RootName {
		a.identity = true
		return a, nil
	}

	compiled, err := Compile(src)
	if err != nil {
		return nil, err
	}
	a.expr = compiled
	return a, nil
}

// Evaluate extracts a value from root. Only dots.ErrMissingKey and
// dots.ErrIndexOutOfRange are replaced by the default; every other failure
// is returned as is.
func (a *Accessor) Evaluate(root any) (any, error) {
	if a.identity {
		return root, nil
	}

	result, err := a.expr.Eval(root)
	if err != nil {
		if a.useDefault && dots.IsLookupFailure(err) {
			return a.def, nil
		}
		return nil, err
	}

	return result, nil
}

// String returns the expression text.
func (a *Accessor) String() string {
	if a.identity {
		return RootName
	}
	return a.expr.String()
}

// Access compiles text and evaluates it against root in one call.
func Access(root any, text string, opts ...Option) (any, error) {
	accessor, err := NewAccessor(text, opts...)
	if err != nil {
		return nil, err
	}
	return accessor.Evaluate(root)
}

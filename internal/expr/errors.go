package expr

import (
	"errors"
	"fmt"
)

// ErrMalformedExpression indicates the expression text could not be compiled.
// It is only returned by compilation, never by evaluation.
var ErrMalformedExpression = errors.New("malformed expression")

func expressionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedExpression, fmt.Sprintf(format, args...))
}

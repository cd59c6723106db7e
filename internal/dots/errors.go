package dots

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey indicates a mapping lookup found no such key.
	ErrMissingKey = errors.New("missing key")

	// ErrIndexOutOfRange indicates a sequence index outside its bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupportedAccess indicates the access style does not apply to the
	// wrapped kind, such as field access on a sequence.
	ErrUnsupportedAccess = errors.New("unsupported access")
)

// AccessError records the step that failed and the underlying cause.
type AccessError struct {
	Kind Kind
	Key  Key
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("dots: %s on %s: %v", e.Key, e.Kind, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

func accessError(kind Kind, key Key, err error) error {
	return &AccessError{Kind: kind, Key: key, Err: err}
}

// IsLookupFailure reports whether err is a missing key or an out of range
// index. These are the only failures a default value may replace.
func IsLookupFailure(err error) bool {
	return errors.Is(err, ErrMissingKey) || errors.Is(err, ErrIndexOutOfRange)
}

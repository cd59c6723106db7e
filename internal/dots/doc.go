// Package dots wraps JSON-shaped values to provide field and index access.
//
// A JSON-shaped value is one of:
//   - a mapping (map[string]any)
//   - a sequence ([]any)
//   - a scalar (string, bool, nil, or any numeric kind, including json.Number)
//
// Wrap returns a Value tagged with the Kind of the underlying data. Every
// access operation returns another Value, so nested containers stay wrapped
// and scalars are reachable through Unwrap. Values hold the underlying data
// by reference and never modify it.
//
// Lookup failures are reported with ErrMissingKey, ErrIndexOutOfRange and
// ErrUnsupportedAccess, wrapped in an *AccessError describing the step.
package dots

// Package expr compiles path expressions into reusable accessors.
//
// An expression names the root value "_" and descends through it:
//
//	_.a.b[2]          field a, field b, index 2
//	_["key name"]     bracketed key
//	_.items[-1]       negative index counts from the end
//	_.items[1:3]      slice, with optional start, end and step
//
// Text is a scalar, not a sequence of characters: indexing or slicing a
// string, as in _.name[0], fails with dots.ErrUnsupportedAccess rather than
// selecting characters.
//
// No other names are in scope. Text starting with "$" is treated as a
// JSONPath query and yields its first match.
//
// An Accessor created WithDefault returns its default instead of failing when
// a key is missing or an index is out of range. Other failures, such as
// field access on a sequence, always propagate.
package expr

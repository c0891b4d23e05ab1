// Package expr parses property expressions.
//
// A property expression addresses a (possibly nested) property of a bean:
//
//	name           simple property
//	name[2]        indexed property
//	name(key)      mapped property
//	a.b[2].c(key)  nested path, resolved one segment at a time
//
// Resolution is incremental: callers take the leading segment with Next or
// Parse, act on it, and continue with the remainder returned by Remove (or
// Segment.Rest). Separators inside subscripts are part of the subscript, so
// "attrs(a.b)" is a single mapped segment with key "a.b".
package expr

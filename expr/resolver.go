package expr

import (
	"fmt"
	"strconv"
	"strings"

	"beankit/errs"
)

const (
	nestedDelim  = '.'
	indexStart   = '['
	indexEnd     = ']'
	mappedStart  = '('
	mappedEnd    = ')'
	noIndex      = -1
	quoteSingle  = '\''
	quoteDouble  = '"'
	maxKeyQuotes = 2
)

// Resolver splits property expressions into segments and classifies them.
// Implementations must be safe for concurrent use.
type Resolver interface {
	// HasNested reports whether expr holds more than one segment.
	HasNested(expr string) bool
	// Next returns the leading segment of expr, subscripts included.
	Next(expr string) string
	// Remove strips the leading segment (and its separator) from expr.
	Remove(expr string) string
	// Property returns the bare property name of the leading segment.
	Property(expr string) string
	// Index returns the subscript of "name[n]"; ok is false when absent.
	Index(expr string) (index int, ok bool, err error)
	// Key returns the key of "name(key)"; ok is false when absent.
	Key(expr string) (key string, ok bool, err error)
	// IsIndexed reports whether the leading segment carries an index.
	IsIndexed(expr string) bool
	// IsMapped reports whether the leading segment carries a key.
	IsMapped(expr string) bool
}

// DefaultResolver implements the standard syntax:
//
//	name           simple property
//	name[2]        indexed property
//	name(key)      mapped property, key may be quoted: name('a.b')
//	a.b[2].c(key)  nested path
type DefaultResolver struct{}

var _ Resolver = DefaultResolver{}

// HasNested reports whether expr holds more than one segment.
func (r DefaultResolver) HasNested(expr string) bool {
	return r.Remove(expr) != ""
}

// Next returns the leading segment of expr. Separators inside subscripts
// do not end the segment, so "a(x.y).b" yields "a(x.y)".
func (DefaultResolver) Next(expr string) string {
	indexed, mapped := false, false

	for i := range len(expr) {
		c := expr[i]

		switch {
		case indexed:
			if c == indexEnd {
				return expr[:i+1]
			}
		case mapped:
			if c == mappedEnd {
				return expr[:i+1]
			}
		case c == nestedDelim:
			return expr[:i]
		case c == mappedStart:
			mapped = true
		case c == indexStart:
			indexed = true
		}
	}

	return expr
}

// Remove strips the leading segment of expr. It returns "" when expr has a
// single segment.
func (r DefaultResolver) Remove(expr string) string {
	head := r.Next(expr)
	if len(head) == len(expr) {
		return ""
	}

	start := len(head)
	if expr[start] == nestedDelim {
		start++
	}

	return expr[start:]
}

// Property returns the name of the leading segment with any subscript stripped.
func (DefaultResolver) Property(expr string) string {
	for i := range len(expr) {
		switch expr[i] {
		case nestedDelim, mappedStart, indexStart:
			return expr[:i]
		}
	}

	return expr
}

// Index parses the "[n]" subscript of the leading segment.
func (DefaultResolver) Index(expr string) (int, bool, error) {
	for i := range len(expr) {
		switch expr[i] {
		case nestedDelim, mappedStart:
			return noIndex, false, nil
		case indexStart:
			end := strings.IndexByte(expr[i:], indexEnd)
			if end < 0 {
				return noIndex, false, parseErr(expr, "missing %q", indexEnd)
			}

			raw := expr[i+1 : i+end]
			if raw == "" {
				return noIndex, false, parseErr(expr, "empty index")
			}

			index, err := strconv.Atoi(raw)
			if err != nil {
				return noIndex, false, parseErr(expr, "invalid index %q", raw)
			}

			if index < 0 {
				return noIndex, false, parseErr(expr, "negative index %d", index)
			}

			return index, true, nil
		}
	}

	return noIndex, false, nil
}

// Key parses the "(key)" subscript of the leading segment. A key wrapped in
// matching single or double quotes is returned without them.
func (DefaultResolver) Key(expr string) (string, bool, error) {
	for i := range len(expr) {
		switch expr[i] {
		case nestedDelim, indexStart:
			return "", false, nil
		case mappedStart:
			end := strings.IndexByte(expr[i:], mappedEnd)
			if end < 0 {
				return "", false, parseErr(expr, "missing %q", mappedEnd)
			}

			return unquote(expr[i+1 : i+end]), true, nil
		}
	}

	return "", false, nil
}

// IsIndexed reports whether the leading segment carries an index.
func (DefaultResolver) IsIndexed(expr string) bool {
	for i := range len(expr) {
		switch expr[i] {
		case nestedDelim, mappedStart:
			return false
		case indexStart:
			return true
		}
	}

	return false
}

// IsMapped reports whether the leading segment carries a key.
func (DefaultResolver) IsMapped(expr string) bool {
	for i := range len(expr) {
		switch expr[i] {
		case nestedDelim, indexStart:
			return false
		case mappedStart:
			return true
		}
	}

	return false
}

func unquote(key string) string {
	if len(key) < maxKeyQuotes {
		return key
	}

	first, last := key[0], key[len(key)-1]
	if first == last && (first == quoteSingle || first == quoteDouble) {
		return key[1 : len(key)-1]
	}

	return key
}

func parseErr(expr, format string, args ...any) error {
	return &errs.PropertyError{
		Kind:     errs.ErrParse,
		Property: expr,
		Msg:      fmt.Sprintf(format, args...),
	}
}

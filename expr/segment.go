package expr

import (
	"strings"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a segment of a property expression.
type Kind int

const (
	KindSimple Kind = iota
	KindIndexed
	KindMapped
)

// Segment is one parsed step of a property expression.
type Segment struct {
	// Raw is the segment text as written, subscript included.
	Raw string
	// Name is the bare property name; empty for "[0]" or "(key)" on their own.
	Name string
	// Kind tells which of Index and Key is meaningful.
	Kind Kind
	// Index is the subscript of an indexed segment, -1 otherwise.
	Index int
	// Key is the subscript of a mapped segment.
	Key string
	// Rest is the unparsed remainder of the expression, "" for the last segment.
	Rest string
}

// IsLast reports whether no segments follow s.
func (s Segment) IsLast() bool {
	return s.Rest == ""
}

var defaultResolver = DefaultResolver{}

// Parse parses the leading segment of expr with the default resolver.
func Parse(expr string) (Segment, error) {
	return ParseWith(defaultResolver, expr)
}

// ParseWith parses the leading segment of expr.
// Supports: "name", "name[2]", "name(key)", "[2]", "(key)" and any of those
// followed by ".rest".
func ParseWith(r Resolver, expr string) (Segment, error) {
	if expr == "" {
		return Segment{}, parseErr(expr, "empty expression")
	}

	raw := r.Next(expr)
	seg := Segment{
		Raw:   raw,
		Name:  r.Property(raw),
		Kind:  KindSimple,
		Index: noIndex,
		Rest:  r.Remove(expr),
	}

	if err := checkDelimiters(raw); err != nil {
		return Segment{}, err
	}

	// exactly one separator lies between a segment and the rest
	switch sep := len(expr) - len(raw) - len(seg.Rest); {
	case seg.Rest == "" && sep > 0:
		return Segment{}, parseErr(expr, "empty segment")
	case seg.Rest != "" && sep == 0:
		return Segment{}, parseErr(expr, "missing separator after %q", raw)
	}

	// index wins over key when both could apply
	index, ok, err := r.Index(raw)
	if err != nil {
		return Segment{}, err
	}

	if ok {
		seg.Kind = KindIndexed
		seg.Index = index

		return seg, nil
	}

	key, ok, err := r.Key(raw)
	if err != nil {
		return Segment{}, err
	}

	if ok {
		seg.Kind = KindMapped
		seg.Key = key

		return seg, nil
	}

	if seg.Name == "" {
		return Segment{}, parseErr(expr, "empty segment")
	}

	return seg, nil
}

// Split parses every segment of expr.
func Split(expr string) ([]Segment, error) {
	var segments []Segment

	for rest := expr; ; {
		seg, err := Parse(rest)
		if err != nil {
			return nil, err
		}

		segments = append(segments, seg)

		if seg.IsLast() {
			return segments, nil
		}

		rest = seg.Rest
	}
}

// checkDelimiters rejects unbalanced or stray subscript delimiters in a
// single segment.
func checkDelimiters(raw string) error {
	open := strings.IndexAny(raw, "[(")
	if open < 0 {
		if strings.ContainsAny(raw, "])") {
			return parseErr(raw, "unmatched closing delimiter")
		}

		return nil
	}

	if strings.ContainsAny(raw[:open], "])") {
		return parseErr(raw, "unmatched closing delimiter")
	}

	closing := byte(indexEnd)
	if raw[open] == mappedStart {
		closing = mappedEnd
	}

	if raw[len(raw)-1] != closing {
		return parseErr(raw, "missing %q", closing)
	}

	return nil
}

// Package naming converts between Go identifiers and bean property names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decapitalize turns a Go identifier into a property name the JavaBeans way:
// the first rune is lowered unless the first two runes are both upper case.
//
//   - "Name" -> "name"
//   - "OrderID" -> "orderID"
//   - "URL" -> "URL"
//   - "X" -> "x"
func Decapitalize(s string) string {
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)
	if size < len(s) {
		second, _ := utf8.DecodeRuneInString(s[size:])
		if unicode.IsUpper(first) && unicode.IsUpper(second) {
			return s
		}
	}

	return string(unicode.ToLower(first)) + s[size:]
}

// Capitalize upper-cases the first rune of s; it is the inverse of
// Decapitalize for names that start with a single capital.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	first, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(first)) + s[size:]
}

// Normalize folds an identifier for loose comparison:
// CamelCase is tokenized, separators (_, -, space) are dropped and the
// result is lower-cased, so "OrderID", "order_id" and "orderId" agree.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// Tokenize splits a CamelCase, camelCase or separated identifier into tokens.
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "order_id" -> ["order", "id"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new token begins at runes[i]:
// on a lower->upper transition ("orderID" splits before 'I') or at the last
// capital of an acronym followed by lower case ("XMLParser" splits before 'P').
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// Package diagnostic collects structured reports of what a bulk bean
// operation skipped and why.
//
// Populate and copy operations tolerate unknown, read-only and unreachable
// properties; the report lists each skipped key with a stable code, the
// bean class, the property expression and, for misspelled names, close
// alternatives.
package diagnostic

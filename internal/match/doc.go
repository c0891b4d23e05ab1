// Package match ranks property names by similarity.
//
// It backs the "did you mean" suggestions attached to unknown-property
// errors and the loose name matching of bulk copies.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names close to a missing one
//   - Find: locates a candidate equal after normalization
package match

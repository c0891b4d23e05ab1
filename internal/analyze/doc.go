// Package analyze derives class definitions from Go source.
//
// It loads packages with golang.org/x/tools/go/packages and applies the
// property rules of the run-time introspector chain to the go/types model
// of each exported struct: exported fields named by their "bean" tag,
// Get/Is/Set accessors, indexed and mapped accessor pairs. The result is a
// dyna.ClassFile that documents can be checked against without compiling
// the struct into the checking program.
//
// Types are named the way convert.TypeNames resolves them. Structs the
// table does not know become "map[string]any" (a nested document), and
// types with no textual form (channels, functions, non-empty interfaces)
// leave the property untyped.
package analyze

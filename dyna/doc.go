// Package dyna provides beans whose property set is described at run time.
//
// A Class describes named, typed slots; a Bean holds their values. Four
// variants share the Bean interface:
//
//	BasicBean  map-backed, fixed class, unknown names fail
//	LazyBean   map-backed, mutable class, unknown names and containers are
//	           created on first use
//	WrapBean   adapter over a Go struct, properties found by introspection
//	MapBean    adapter over a map with string keys
//
// Mutable classes assume a single writer. Callers changing the same LazyClass
// from several goroutines must synchronize themselves.
package dyna

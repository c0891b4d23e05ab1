// Package introspect discovers and caches the properties of Go types.
//
// A chain of Introspector strategies builds the Descriptor set of a type;
// Cache memoizes the result per reflect.Type. Descriptors read and write
// property values on live beans, resolving accessor methods by name on each
// call.
package introspect

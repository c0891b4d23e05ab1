// Package beanutil reads and writes bean properties by expression.
//
// A bean is a *struct, a map with string keys or a dyna.Bean. Expressions
// address simple, indexed and mapped properties and may be nested:
//
//	ctx := beanutil.New()
//	city, err := ctx.GetProperty(order, "customer.addresses[0].city")
//	err = ctx.SetFromString(order, "lines[2].quantity", "3")
//
// Get and Set operate on values unconverted. GetString, SetFromString,
// SetConverted, CopyConverted and Populate run values through the
// context's conversion registry, converting to the declared type of the
// destination slot. Mapped slots take the value as is unless their map
// cannot hold it.
//
// Reads through a nil link fail with errs.ErrNestedNull; writes through a
// nil link do nothing and report no error. A nil bean is not a link and
// fails with errs.ErrUnsupported either way. Bulk operations (CopyProperties,
// CopyConverted, Populate) skip unknown and read-only properties, while
// single-property writes report them.
//
// Every Context owns its introspection cache and conversion registry. Use
// ForDomain to keep separately configured contexts within one process.
package beanutil

// Package convert turns values into the types bean properties declare.
//
// A Registry maps destination types to Converters. The built-in converters
// cover Go's basic kinds, time.Time and time.Duration, big numbers, URLs,
// UUIDs and ULIDs; converters for slices, arrays, pointers, named basic
// types and encoding.TextUnmarshaler implementations are derived on demand.
//
// Which scalar conversions may happen is controlled by Category flags:
//
//	r := convert.NewRegistry(convert.WithCategories(
//		convert.CategorySafeNumber | convert.CategoryTextNumber,
//	))
//
// A failed conversion either returns a *errs.ConversionError (ModeStrict) or
// yields a default value (ModeLenient). The mode is registry-wide and may be
// overridden per destination type with Configure.
//
// Rendering a value as a string never fails: the converter of the value's
// own type is tried first, then the string converter, then fmt.
package convert

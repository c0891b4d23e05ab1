// Package errs defines the error kinds shared by every beankit package.
//
// Each failure is classified by one of the sentinel values below and can be
// matched with errors.Is. PropertyError and ConversionError carry the context
// (bean, property, expression, offending value) needed to diagnose a failure.
package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrParse reports a malformed property expression.
	ErrParse = errors.New("invalid property expression")
	// ErrNoSuchProperty reports a property missing from a bean's class.
	ErrNoSuchProperty = errors.New("no such property")
	// ErrKindMismatch reports indexed or mapped access on a property that is neither.
	ErrKindMismatch = errors.New("property kind mismatch")
	// ErrNestedNull reports an intermediate segment of a nested path resolving to nil.
	ErrNestedNull = errors.New("nil intermediate property")
	// ErrConversion reports a converter that could not produce the requested type.
	ErrConversion = errors.New("conversion failed")
	// ErrAccess reports a property that cannot be read or written.
	ErrAccess = errors.New("property access denied")
	// ErrRestricted reports a structural change on a restricted class.
	ErrRestricted = errors.New("class is restricted")
	// ErrTypeMismatch reports a value that does not fit the declared slot type.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrIndexOutOfRange reports an index beyond the bounds of an indexed property.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnsupported reports an operation the bean variant cannot perform.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrInvocation reports an accessor method that returned an error.
	ErrInvocation = errors.New("accessor failed")
)

// PropertyError describes a failed property operation.
type PropertyError struct {
	// Kind is one of the sentinel errors of this package.
	Kind error
	// Bean names the bean class the operation ran against (if known).
	Bean string
	// Property is the property name or segment that failed.
	Property string
	// Expr is the full expression being resolved (if different from Property).
	Expr string
	// Msg is an optional human-readable detail.
	Msg string
	// Err is the underlying cause (if any).
	Err error
	// Suggestions are close property names, set for ErrNoSuchProperty.
	Suggestions []string
}

// New builds a PropertyError of the given kind.
func New(kind error, bean, property, msg string) *PropertyError {
	return &PropertyError{Kind: kind, Bean: bean, Property: property, Msg: msg}
}

// Wrap builds a PropertyError of the given kind around cause.
func Wrap(kind error, bean, property string, cause error) *PropertyError {
	return &PropertyError{Kind: kind, Bean: bean, Property: property, Err: cause}
}

// WithExpr records the full expression on e and returns it.
func (e *PropertyError) WithExpr(expr string) *PropertyError {
	if expr != e.Property {
		e.Expr = expr
	}

	return e
}

// Error implements error.
func (e *PropertyError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Error())

	if e.Property != "" {
		fmt.Fprintf(&b, " %q", e.Property)
	}

	if e.Bean != "" {
		fmt.Fprintf(&b, " on %s", e.Bean)
	}

	if e.Expr != "" {
		fmt.Fprintf(&b, " (in %q)", e.Expr)
	}

	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PropertyError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// ConversionError reports a value that could not be converted to a type.
type ConversionError struct {
	Value any
	From  reflect.Type
	To    reflect.Type
	Err   error
}

// Error implements error.
func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s value %v to %s", typeName(e.From), e.Value, typeName(e.To))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes ErrConversion and the cause.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversion}
	}

	return []error{ErrConversion, e.Err}
}

// Conversion builds a ConversionError for value and target.
func Conversion(value any, to reflect.Type, cause error) *ConversionError {
	var from reflect.Type
	if value != nil {
		from = reflect.TypeOf(value)
	}

	return &ConversionError{Value: value, From: from, To: to, Err: cause}
}

// IsBenign reports whether err is one of the existence-related kinds that
// bulk operations skip instead of surfacing.
func IsBenign(err error) bool {
	return errors.Is(err, ErrNoSuchProperty) || errors.Is(err, ErrNestedNull)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

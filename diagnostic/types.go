package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"beankit/errs"
	"beankit/internal/common"
)

// Codes of the diagnostics produced by bulk operations.
const (
	CodeUnknownProperty = "unknown_property"
	CodeReadOnly        = "read_only"
	CodeWriteOnly       = "write_only"
	CodeNestedNull      = "nested_null"
	CodeConversion      = "conversion"
	CodeTypeMismatch    = "type_mismatch"
	CodeFailed          = "failed"
)

// Diagnostics holds every diagnostic of one operation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Bean names the bean class this relates to (if any).
	Bean string
	// Property is the property expression this relates to (if any).
	Property string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, bean, property string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Bean:     bean,
		Property: property,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, bean, property string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Bean:     bean,
		Property: property,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, bean, property string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Bean:     bean,
		Property: property,
	})
}

// AddSkipped records a key a bulk operation skipped because of err. Skips
// are warnings; the bean and suggestions come from a *errs.PropertyError.
func (d *Diagnostics) AddSkipped(property string, err error) {
	diag := Diagnostic{
		Severity: DiagnosticWarning,
		Code:     Code(err),
		Message:  err.Error(),
		Property: property,
	}

	var pe *errs.PropertyError
	if errors.As(err, &pe) {
		diag.Bean = pe.Bean
		diag.Suggestions = pe.Suggestions
	}

	d.Warnings = append(d.Warnings, diag)
}

// Code classifies err by the kind of failure it reports. Access failures
// are reported as CodeReadOnly since bulk operations skip on the writing
// side.
func Code(err error) string {
	switch {
	case errors.Is(err, errs.ErrNoSuchProperty):
		return CodeUnknownProperty
	case errors.Is(err, errs.ErrNestedNull):
		return CodeNestedNull
	case errors.Is(err, errs.ErrConversion):
		return CodeConversion
	case errors.Is(err, errs.ErrTypeMismatch), errors.Is(err, errs.ErrKindMismatch):
		return CodeTypeMismatch
	case errors.Is(err, errs.ErrAccess):
		return CodeReadOnly
	default:
		return CodeFailed
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Skipped returns the properties named by warnings, in order.
func (d *Diagnostics) Skipped() []string {
	out := make([]string, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		out = append(out, w.Property)
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Bean != "" {
		prefix = append(prefix, "["+d.Bean+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

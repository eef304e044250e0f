package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"pathcodec/internal/common"
)

// Diagnostic codes reported by schema validation.
const (
	CodeMissingName         = "missing_name"
	CodeInvalidName         = "invalid_name"
	CodeDuplicateType       = "duplicate_type"
	CodeDuplicateField      = "duplicate_field"
	CodeEmptyPath           = "empty_path"
	CodePathConflict        = "path_conflict"
	CodeUnknownType         = "unknown_type"
	CodeInvalidKind         = "invalid_kind"
	CodeDefaultTypeMismatch = "default_type_mismatch"
	CodeUnsupportedVersion  = "unsupported_version"
	CodeFlagsOverlap        = "flags_overlap"
	CodeNoFields            = "no_fields"
)

// Diagnostics holds everything validation found, by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding; see the Code constants.
	Code    string
	Message string
	// Type is the declared type the finding relates to (if any).
	Type string
	// Field is the field the finding relates to (if any).
	Field string
	// Suggestions are potential fixes.
	Suggestions []string
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(sev Severity, code, message, typ, fieldName string) *Diagnostic {
	diag := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Type:     typ,
		Field:    fieldName,
	}

	list := &d.Infos

	switch sev {
	case SeverityError:
		list = &d.Errors
	case SeverityWarning:
		list = &d.Warnings
	}

	*list = append(*list, diag)

	return &(*list)[len(*list)-1]
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typ, fieldName string) {
	d.add(SeverityError, code, message, typ, fieldName)
}

// AddErrorf adds an error diagnostic with a formatted message.
func (d *Diagnostics) AddErrorf(code, typ, fieldName, format string, args ...any) {
	d.add(SeverityError, code, fmt.Sprintf(format, args...), typ, fieldName)
}

// AddSuggested adds an error diagnostic carrying suggestions.
func (d *Diagnostics) AddSuggested(code, message, typ, fieldName string, suggestions ...string) {
	diag := d.add(SeverityError, code, message, typ, fieldName)
	diag.Suggestions = suggestions
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typ, fieldName string) {
	d.add(SeverityWarning, code, message, typ, fieldName)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typ, fieldName string) {
	d.add(SeverityInfo, code, message, typ, fieldName)
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

// Codes lists the codes of the error diagnostics in report order.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic, e.g. "[Order] total: [unknown_type] unknown type \"money\"".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
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

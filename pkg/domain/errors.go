package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure. Caller kinds indicate a bad
// request; configuration kinds indicate catalog/template drift and are a
// server-side defect, never the caller's fault.
type ErrorKind string

const (
	// KindUnknownTool: the requested tool name has no catalog descriptor.
	KindUnknownTool ErrorKind = "unknown_tool"
	// KindMissingParameter: a required parameter was not supplied.
	KindMissingParameter ErrorKind = "missing_required_parameter"
	// KindInvalidValue: a supplied value violates its type or a
	// tool-specific constraint (e.g. an enumerated option).
	KindInvalidValue ErrorKind = "invalid_parameter_value"
	// KindUnknownTemplate: a catalog tool has no registered template.
	KindUnknownTemplate ErrorKind = "unknown_template"
	// KindSubstitution: a template placeholder had no processed value.
	KindSubstitution ErrorKind = "template_substitution_error"
)

// Error is a classified generation error with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is allows matching by kind with errors.Is against another *Error.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// ErrUnknownTool builds an UnknownTool error for the given name.
func ErrUnknownTool(name string) *Error {
	return &Error{Kind: KindUnknownTool, Message: fmt.Sprintf("unknown tool: %s", name)}
}

// ErrMissingParameter builds a MissingRequiredParameter error.
func ErrMissingParameter(tool, param string) *Error {
	return &Error{
		Kind:    KindMissingParameter,
		Message: fmt.Sprintf("missing required parameter %q for tool %s", param, tool),
	}
}

// ErrInvalidValue builds an InvalidParameterValue error. The message must
// carry enough detail to fix the call (offending value and, for
// enumerations, the accepted set).
func ErrInvalidValue(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidValue, Message: fmt.Sprintf(format, args...)}
}

// ErrUnknownTemplate builds an UnknownTemplate error. This is a
// configuration inconsistency between catalog and templates, not a caller
// error.
func ErrUnknownTemplate(tool string) *Error {
	return &Error{
		Kind:    KindUnknownTemplate,
		Message: fmt.Sprintf("no script template registered for tool: %s", tool),
	}
}

// ErrSubstitution builds a TemplateSubstitutionError. It indicates a
// processor/template mismatch and is a programming defect.
func ErrSubstitution(tool, placeholder string) *Error {
	return &Error{
		Kind:    KindSubstitution,
		Message: fmt.Sprintf("template for tool %s references %q, which was not produced by parameter processing", tool, placeholder),
	}
}

// IsCallerError reports whether err should be surfaced as a client fault
// (HTTP 4xx, JSON-RPC invalid params) rather than a server fault.
func IsCallerError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindUnknownTool, KindMissingParameter, KindInvalidValue:
		return true
	}
	return false
}

// KindOf returns the classification of err, or an empty kind when err is
// not a classified generation error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

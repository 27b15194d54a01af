package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryTables Category = "tables"
	CategoryCLI    Category = "cli"
	CategoryServer Category = "server"
)

// Location points at the file (and optionally line) an error refers to.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	switch {
	case l.Line > 0 && l.Column > 0:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	case l.Line > 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return l.File
	}
}

// TagkitError is a structured error with a registered code.
type TagkitError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Location is the file the error refers to, if any.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is a snippet showing the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TagkitError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TagkitError) Unwrap() error {
	return e.Wrapped
}

// WithFile records the file the error refers to.
func (e *TagkitError) WithFile(file string) *TagkitError {
	e.Location = &Location{File: file}
	return e
}

// WithLocation records a file position.
func (e *TagkitError) WithLocation(file string, line, column int) *TagkitError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TagkitError) WithSuggestion(s string) *TagkitError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *TagkitError) WithExample(ex string) *TagkitError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *TagkitError) WithDetail(d string) *TagkitError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *TagkitError) WithDetailf(format string, args ...any) *TagkitError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *TagkitError) Wrap(err error) *TagkitError {
	e.Wrapped = err
	return e
}

// New creates a TagkitError from a registered error code.
func New(code string) *TagkitError {
	template, ok := registry[code]
	if !ok {
		return &TagkitError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TagkitError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new TagkitError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *TagkitError {
	return &TagkitError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a TagkitError.
func FromError(err error, code string) *TagkitError {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TagkitError); ok {
		return te
	}
	return New(code).Wrap(err)
}

// Is reports whether target is a TagkitError with the same code.
func (e *TagkitError) Is(target error) bool {
	t, ok := target.(*TagkitError)
	return ok && e.Code != "" && e.Code == t.Code
}

// HasCode reports whether any error in err's tree is a TagkitError with the
// given code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &TagkitError{Code: code})
}

package docmgr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TableIndexError is returned when a table index does not reference an existing table
type TableIndexError struct {
	Index int
	Count int
}

func (e *TableIndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("table index %d out of range: document has no tables", e.Index)
	}
	return fmt.Sprintf("table index %d out of range: document has %d tables", e.Index, e.Count)
}

// NewTableIndexError creates a new table index error
func NewTableIndexError(index, count int) error {
	return &TableIndexError{
		Index: index,
		Count: count,
	}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	msg := "docmgr: " + e.Operation
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause == nil {
		return msg + " failed"
	}
	return msg + ": " + e.Cause.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid input"
	case 1:
		return fmt.Sprintf("invalid %s: %s", e.Issues[0].Field, e.Issues[0].Message)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d invalid fields:", len(e.Issues))
	for _, issue := range e.Issues {
		fmt.Fprintf(&sb, "\n  %s: %s", issue.Field, issue.Message)
	}
	return sb.String()
}

// Add records an issue
func (e *ValidationError) Add(field, format string, args ...interface{}) {
	e.Issues = append(e.Issues, ValidationIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns the validation error or nil if no issues were recorded
func (e *ValidationError) Err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// NewValidationError creates a validation error holding a single issue
func NewValidationError(field, message string) error {
	return &ValidationError{Issues: []ValidationIssue{{Field: field, Message: message}}}
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Errors returns the collected errors
func (m *MultiError) Errors() []error {
	return append([]error(nil), m.errors...)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	switch len(m.errors) {
	case 0:
		return "no errors"
	case 1:
		return m.errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d failures:", len(m.errors))
	for i, err := range m.errors {
		fmt.Fprintf(&sb, "\n  %d. %v", i+1, err)
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.errors
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(contextParts)

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsTableIndexError checks if an error is, or wraps, a table index error
func IsTableIndexError(err error) bool {
	var target *TableIndexError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is, or wraps, a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}

// IsValidationError checks if an error is, or wraps, a validation error
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

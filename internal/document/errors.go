// Package document implements the editable resume document and its update operations.
package document

import "fmt"

// UnknownListError indicates a list name that the document does not have.
type UnknownListError struct {
	List string
}

func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown list: %s", e.List)
}

// UnknownFieldError indicates a field name that the target record does not have.
type UnknownFieldError struct {
	Target string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q on %s", e.Field, e.Target)
}

// InvalidValueError indicates a value that cannot be stored in an enumerated field.
type InvalidValueError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Message)
}

package editor

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an AI or import operation is already in flight.
var ErrBusy = errors.New("another operation is in progress")

// ErrJobTitleRequired is returned by actions that need a target job title.
var ErrJobTitleRequired = errors.New("a target job title is required")

// ErrEmptyDescription is returned when enhancing an entry with no description.
var ErrEmptyDescription = errors.New("experience description is empty")

// ErrSessionClosed is returned for operations on an expired or deleted session.
var ErrSessionClosed = errors.New("session closed")

// UnknownStepError indicates a step name outside the wizard.
type UnknownStepError struct {
	Name string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step: %q", e.Name)
}

// SessionNotFoundError indicates no live session has the given id.
type SessionNotFoundError struct {
	ID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ItemNotFoundError indicates an entry that is not in the document.
type ItemNotFoundError struct {
	List string
	ID   string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s item not found: %s", e.List, e.ID)
}

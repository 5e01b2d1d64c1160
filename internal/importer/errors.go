package importer

import (
	"errors"
	"fmt"
)

// ErrNoCredential is returned when no generation service credential is configured.
var ErrNoCredential = errors.New("no generation service credential configured")

// InputError reports an import request that cannot be processed.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid import input: %s", e.Message)
}

// Stages of an import
const (
	StageFetch    = "fetch"
	StagePrepare  = "prepare"
	StageGenerate = "generate"
	StageValidate = "validate"
	StageDecode   = "decode"
)

// ParseError reports a failure at one stage of an import.
type ParseError struct {
	Stage string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("resume import failed during %s: %v", e.Stage, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

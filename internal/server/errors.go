// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates an upload over the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds the %d byte limit", e.Limit)
}

// ErrUnsupportedMedia indicates an upload of a type the endpoint does not take
type ErrUnsupportedMedia struct {
	ContentType string
	Expected    string
}

func (e *ErrUnsupportedMedia) Error() string {
	return fmt.Sprintf("unsupported content type %q, expected %s", e.ContentType, e.Expected)
}

// ErrUnavailable indicates a feature that is not configured on this server
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		tooLarge     *ErrPayloadTooLarge
		maxBytes     *http.MaxBytesError
		unsupported  *ErrUnsupportedMedia
		unavailable  *ErrUnavailable
		unknownStep  *editor.UnknownStepError
		unknownList  *document.UnknownListError
		unknownField *document.UnknownFieldError
		invalidValue *document.InvalidValueError
		badInput     *importer.InputError
		parseFailure *importer.ParseError
		noSession    *editor.SessionNotFoundError
		noItem       *editor.ItemNotFoundError
		pdfFailure   *rendering.PDFError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &unknownStep), errors.As(err, &unknownList),
		errors.As(err, &unknownField), errors.As(err, &invalidValue), errors.As(err, &badInput):
		return http.StatusBadRequest
	case errors.As(err, &noSession), errors.As(err, &noItem):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, editor.ErrSessionClosed):
		return http.StatusGone
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parseFailure) &&
		(parseFailure.Stage == importer.StageGenerate || parseFailure.Stage == importer.StageFetch):
		return http.StatusBadGateway
	case errors.Is(err, editor.ErrJobTitleRequired), errors.Is(err, editor.ErrEmptyDescription),
		errors.As(err, &parseFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, importer.ErrNoCredential), errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &pdfFailure) && pdfFailure.TimedOut:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		profileErr    *validation.ProfileError
		loadErr       *profile.LoadError
		templateErr   *rendering.TemplateError
		fetchErr      *fetch.Error
		ingestErr     *ingestion.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &loadErr), errors.As(err, &templateErr):
		return http.StatusBadRequest
	case errors.As(err, &profileErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &ingestErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

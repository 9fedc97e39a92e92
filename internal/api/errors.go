package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/scripture"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler makes huma build every error through toAPIError.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			if apiErr := fromError(err); apiErr != nil {
				return apiErr
			}
		}

		apiErr := &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
		if details := validationDetails(errs); len(details) > 0 {
			apiErr.Details = details
		}
		return apiErr
	}
}

// fromError maps errors returned by services to API errors. It returns nil
// for errors it does not recognize.
func fromError(err error) *APIError {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return &APIError{
			status:  domainErr.HTTPStatus(),
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Details: domainErr.Details,
		}
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		code := domainerrors.CodeNotFound
		if storeErr.HTTPCode() == http.StatusConflict {
			code = domainerrors.CodeAlreadyExists
		}
		return &APIError{status: code.HTTPStatus(), Code: string(code), Message: storeErr.Message}
	}

	switch {
	case errors.Is(err, scripture.ErrVerseOutOfRange):
		return &APIError{
			status:  http.StatusNotFound,
			Code:    string(domainerrors.CodeNotFound),
			Message: "Sorry, scripture not found.",
		}
	case errors.Is(err, scripture.ErrProviderUnavailable):
		return &APIError{
			status:  domainerrors.CodeProviderUnavailable.HTTPStatus(),
			Code:    string(domainerrors.CodeProviderUnavailable),
			Message: domainerrors.ErrProviderUnavailable.Message,
		}
	case errors.Is(err, scripture.ErrProviderError):
		return &APIError{
			status:  domainerrors.CodeProviderError.HTTPStatus(),
			Code:    string(domainerrors.CodeProviderError),
			Message: domainerrors.ErrProviderError.Message,
		}
	}
	return nil
}

// validationDetails collects huma's request validation messages.
func validationDetails(errs []error) []string {
	var out []string
	for _, err := range errs {
		var detail huma.ErrorDetailer
		if errors.As(err, &detail) {
			out = append(out, detail.ErrorDetail().Error())
		}
	}
	return out
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeAlreadyExists)
	case http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	case http.StatusBadGateway:
		return string(domainerrors.CodeProviderError)
	case http.StatusServiceUnavailable:
		return string(domainerrors.CodeProviderUnavailable)
	default:
		return string(domainerrors.CodeInternal)
	}
}

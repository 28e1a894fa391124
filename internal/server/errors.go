package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/paperpress/internal/design"
	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
)

type apiError struct {
	status  int
	code    string
	message string
	fields  []design.ValidationError
}

func (e *apiError) Error() string { return e.code }

var (
	ErrNotFound           = &apiError{status: http.StatusNotFound, code: "not_found", message: "resource not found"}
	ErrForbidden          = &apiError{status: http.StatusForbidden, code: "permission_denied", message: "operation not permitted"}
	ErrServiceUnavailable = &apiError{status: http.StatusServiceUnavailable, code: "service_unavailable", message: "service unavailable"}
	ErrTooManyRequests    = &apiError{status: http.StatusTooManyRequests, code: "rate_limited", message: "too many requests"}
)

func invalidRequestError() *apiError {
	return &apiError{
		status:  http.StatusBadRequest,
		code:    "invalid_request",
		message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		status:  http.StatusBadRequest,
		code:    "validation_error",
		message: message,
		fields:  []design.ValidationError{{Field: field, Code: code, Message: message}},
	}
}

func designValidationError(errs design.ValidationErrors) *apiError {
	return &apiError{
		status:  http.StatusBadRequest,
		code:    "validation_error",
		message: "design config is invalid",
		fields:  errs,
	}
}

// AbortWithError maps domain errors onto the HTTP error taxonomy and writes
// the response body.
func AbortWithError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	_ = c.Error(err)

	body := gin.H{
		"error":   apiErr.code,
		"message": apiErr.message,
	}
	if len(apiErr.fields) > 0 {
		body["fields"] = apiErr.fields
	}
	c.AbortWithStatusJSON(apiErr.status, body)
}

func toAPIError(err error) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErrs design.ValidationErrors
	if errors.As(err, &validationErrs) {
		return designValidationError(validationErrs)
	}

	switch {
	case errors.Is(err, templatedomain.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, templatedomain.ErrSystemTemplateImmutable):
		return &apiError{status: http.StatusForbidden, code: "system_template_immutable", message: "system templates cannot be modified"}
	case errors.Is(err, templatedomain.ErrDefaultDeletionConflict):
		return &apiError{status: http.StatusConflict, code: "default_template_conflict", message: "the only default template cannot be deleted"}
	case errors.Is(err, templatedomain.ErrInvalidOrganization):
		return &apiError{status: http.StatusBadRequest, code: "invalid_organization", message: "a valid X-Org-ID header is required"}
	case errors.Is(err, templatedomain.ErrInvalidID):
		return &apiError{status: http.StatusBadRequest, code: "invalid_id", message: "template id is invalid"}
	case errors.Is(err, templatedomain.ErrInvalidName):
		return &apiError{status: http.StatusBadRequest, code: "invalid_name", message: "template name is invalid"}
	case errors.Is(err, templatedomain.ErrInvalidDefaults):
		return &apiError{status: http.StatusBadRequest, code: "invalid_defaults", message: "template defaults exceed the allowed length"}
	case errors.Is(err, design.ErrUnknownSchema):
		return &apiError{status: http.StatusBadRequest, code: "unknown_schema", message: "design schema version is not supported"}
	default:
		return &apiError{status: http.StatusInternalServerError, code: "internal_error", message: "internal server error"}
	}
}

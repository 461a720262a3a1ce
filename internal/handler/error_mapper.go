package handler

import (
	"errors"
	"net/http"

	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Pass through errors that already carry a status
	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	switch {
	// ===== Authentication Errors → 403 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewAuthFailedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotPlaceOwner):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrPlaceNotFound):
		return model.NewNotFoundError("place")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordTooShort):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})
	case errors.Is(err, service.ErrAddressUnknown):
		return model.NewValidationError([]model.FieldError{{Field: "address", Message: err.Error()}})

	// ===== Upload Errors =====
	case errors.Is(err, service.ErrUploadTooLarge):
		return &model.ProblemDetails{
			Type:   "https://places-api.forgo.software/errors/payload-too-large",
			Title:  "Payload Too Large",
			Status: http.StatusRequestEntityTooLarge,
			Detail: err.Error(),
			Code:   model.ErrCodeInvalidInput,
		}
	case errors.Is(err, service.ErrUnsupportedType):
		return &model.ProblemDetails{
			Type:   "https://places-api.forgo.software/errors/unsupported-media-type",
			Title:  "Unsupported Media Type",
			Status: http.StatusUnsupportedMediaType,
			Detail: err.Error(),
			Code:   model.ErrCodeInvalidInput,
		}

	// ===== External Service Errors → 502 =====
	case errors.Is(err, service.ErrGeocodeFailed):
		return model.NewBadGatewayError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

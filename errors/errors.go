package errors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrPersistence           = fmt.Errorf("message store unavailable")
	ErrMessageNotFound       = fmt.Errorf("message not found")
	ErrUserNotFound          = fmt.Errorf("user not found")
	ErrUnknownRecipient      = fmt.Errorf("recipient does not exist")
	ErrSelfMessage           = fmt.Errorf("cannot message yourself")
	ErrInvalidPayload        = fmt.Errorf("invalid payload")
	ErrUnsupportedAsset      = fmt.Errorf("image payload is not a supported image")
	ErrInvalidCredentials    = fmt.Errorf("invalid credentials")
	ErrUserAlreadyExists     = fmt.Errorf("an account with that email already exists")
	ErrInvalidPassword       = fmt.Errorf("password does not meet complexity rules")
	ErrTokenGeneration       = fmt.Errorf("token generation failed")
	ErrUnauthenticated       = fmt.Errorf("not authenticated")
	ErrForbidden             = fmt.Errorf("identity mismatch")
	ErrSessionClosed         = fmt.Errorf("session closed")
	ErrSessionBackpressure   = fmt.Errorf("session queue full")
	ErrNoCounterpartSelected = fmt.Errorf("no counterpart selected")
	ErrWorkerPanic           = fmt.Errorf("worker panicked")
	ErrNothingToUpdate       = fmt.Errorf("nothing to update")
)

// MapToHTTPStatus translates a service error into the status code returned by the REST surface.
// Unknown errors are reported as internal errors.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrSelfMessage),
		errors.Is(err, ErrUnsupportedAsset),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrNothingToUpdate):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrUnknownRecipient):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, ErrPersistence):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

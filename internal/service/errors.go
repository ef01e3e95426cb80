package service

import (
	"errors"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/store"
	"github.com/samber/oops"
)

// ErrValidation marks errors caused by malformed client input. Errors
// returned for invalid input match both ErrValidation and the validator
// error carrying the client message.
var ErrValidation = errors.New("validation failed")

// The messages of the errors below are safe to return to API clients.
var (
	ErrDuplicateEmail        = errors.New(app.MsgEmailInUse)
	ErrDuplicateUsername     = errors.New(app.MsgUsernameTaken)
	ErrInvalidCredentials    = errors.New(app.MsgInvalidCredentials)
	ErrEmailNotVerified      = errors.New(app.MsgEmailNotVerified)
	ErrAlreadyVerified       = errors.New(app.MsgAlreadyVerified)
	ErrUserNotFound          = errors.New(app.MsgUserNotFound)
	ErrInvalidOrExpiredToken = errors.New(app.MsgInvalidOrExpiredToken)
	ErrInvalidOrExpiredOTP   = errors.New(app.MsgInvalidOrExpiredOTP)
	ErrUnauthorized          = errors.New(app.MsgNoTokenProvided)
	ErrInvalidToken          = errors.New(app.MsgInvalidToken)
	ErrForbidden             = errors.New(app.MsgForbidden)

	ErrEventNotFound       = errors.New(app.MsgEventNotFound)
	ErrTicketNotFound      = errors.New(app.MsgTicketNotFound)
	ErrImageUploadDisabled = errors.New(app.MsgImageUploadDisabled)
	ErrInvalidImageType    = errors.New(app.MsgInvalidImageType)
	ErrInvalidPatch        = errors.New(app.MsgInvalidRequestBody)
)

var (
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// codeInternal tags unexpected failures; the HTTP layer answers them with 500.
const codeInternal = "INTERNAL"

// validationError wraps err so that it matches [ErrValidation] while keeping
// err's message.
type validationError struct {
	err error
}

func newValidationError(err error) error {
	return &validationError{err: err}
}

func (e *validationError) Error() string {
	return e.err.Error()
}

func (e *validationError) Unwrap() []error {
	return []error{ErrValidation, e.err}
}

// internalError wraps an unexpected failure with a stack trace.
func internalError(domain string, err error, msg string) error {
	return oops.
		Code(codeInternal).
		In(domain).
		Wrapf(err, "%s", msg)
}

// mapStoreError translates repository sentinels into their client-facing
// counterparts. Anything unrecognised becomes an internal error.
func mapStoreError(domain string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return ErrDuplicateUsername
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, store.ErrTicketNotFound):
		return ErrTicketNotFound
	case errors.Is(err, store.ErrImageStorageDisabled):
		return ErrImageUploadDisabled
	default:
		return internalError(domain, err, "store operation failed")
	}
}

// isInternal reports whether err was produced by [internalError].
func isInternal(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	return ok && oopsErr.Code() == codeInternal
}

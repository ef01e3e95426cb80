package adapter

import "errors"

var (
	ErrUnknownMailProvider = errors.New("unknown mail provider")
	ErrInvalidMailConfig   = errors.New("invalid mail configuration")
	ErrSendingEmail        = errors.New("error sending email")

	ErrBadRequest          = errors.New("mail api: bad request")
	ErrUnauthorized        = errors.New("mail api: unauthorized")
	ErrForbidden           = errors.New("mail api: forbidden")
	ErrNotFound            = errors.New("mail api: not found")
	ErrTooManyRequests     = errors.New("mail api: too many requests")
	ErrBadGateway          = errors.New("mail api: bad gateway")
	ErrInternalServerError = errors.New("mail api: internal server error")
)

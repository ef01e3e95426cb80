package validators

import (
	"errors"

	"github.com/MKhiriev/evently/internal/app"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// The messages of the errors below are safe to return to API clients.
var (
	ErrRegisterFieldsRequired = errors.New(app.MsgAllFieldsRequired)
	ErrCredentialsRequired    = errors.New(app.MsgCredentialsRequired)
	ErrEmailRequired          = errors.New(app.MsgEmailRequired)
	ErrInvalidEmail           = errors.New(app.MsgInvalidEmail)
	ErrOTPRequired            = errors.New(app.MsgOTPRequired)
	ErrNewPasswordRequired    = errors.New(app.MsgNewPasswordRequired)
	ErrNoFieldsToUpdate       = errors.New(app.MsgNoFieldsToUpdate)
	ErrEmptyUpdateField       = errors.New(app.MsgEmptyUpdateField)

	ErrEventFieldsRequired  = errors.New(app.MsgEventFieldsRequired)
	ErrInvalidEventDates    = errors.New(app.MsgInvalidEventDates)
	ErrInvalidLocationMode  = errors.New(app.MsgInvalidLocationMode)
	ErrVenueRequired        = errors.New(app.MsgVenueRequired)
	ErrURLRequired          = errors.New(app.MsgURLRequired)
	ErrEventCreatorRequired = errors.New(app.MsgEventCreatorRequired)

	ErrEventIDRequired       = errors.New(app.MsgEventIDRequired)
	ErrTicketFieldsRequired  = errors.New(app.MsgTicketFieldsRequired)
	ErrInvalidTicketType     = errors.New(app.MsgInvalidTicketType)
	ErrInvalidStockType      = errors.New(app.MsgInvalidStockType)
	ErrAvailableRequired     = errors.New(app.MsgAvailableRequired)
	ErrInvalidPurchaseLimit  = errors.New(app.MsgInvalidPurchaseLimit)
	ErrPayoutRequired        = errors.New(app.MsgPayoutRequired)
	ErrInvalidTicketQuantity = errors.New(app.MsgInvalidTicketQuantity)
)

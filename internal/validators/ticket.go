package validators

import (
	"context"

	"github.com/MKhiriev/evently/models"
)

const (
	FieldEventID       = "event_id"
	FieldTicketDetails = "ticket_details"
	FieldTicketPricing = "ticket_pricing"
	FieldTicketStock   = "ticket_stock"
	FieldPurchaseLimit = "purchase_limit"
)

// TicketValidator validates tickets before they are written. Paid tickets
// need a full payout, limited stock needs an available count.
type TicketValidator struct {
}

func NewTicketValidator() Validator {
	return &TicketValidator{}
}

func (v *TicketValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Ticket:
		return v.validateTicket(value, fields...)
	case *models.Ticket:
		return v.validateTicket(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *TicketValidator) validateTicket(t models.Ticket, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEventID, FieldTicketDetails, FieldTicketPricing, FieldTicketStock, FieldPurchaseLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldEventID:
			if blank(t.EventID) {
				return ErrEventIDRequired
			}
		case FieldTicketDetails:
			if blank(t.TicketName) || blank(t.Benefits) || blank(t.TicketDescription) {
				return ErrTicketFieldsRequired
			}
		case FieldTicketPricing:
			switch t.Pricing.Type {
			case models.TicketFree:
			case models.TicketPaid:
				p := t.Pricing.Payout
				if p == nil || p.Price <= 0 || blank(p.Bank) || blank(p.AccountNumber) || blank(p.AccountName) {
					return ErrPayoutRequired
				}
			default:
				return ErrInvalidTicketType
			}
		case FieldTicketStock:
			switch t.Stock.Type {
			case models.StockUnlimited:
			case models.StockLimited:
				if t.Stock.Available == nil {
					return ErrAvailableRequired
				}
				if *t.Stock.Available < 0 {
					return ErrInvalidTicketQuantity
				}
			default:
				return ErrInvalidStockType
			}
		case FieldPurchaseLimit:
			if t.PurchaseLimit <= 0 {
				return ErrInvalidPurchaseLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

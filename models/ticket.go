package models

import (
	"encoding/json"
	"time"
)

// TicketType tells whether a ticket is free or paid.
type TicketType string

const (
	TicketFree TicketType = "free"
	TicketPaid TicketType = "paid"
)

// StockType tells whether a ticket has a limited stock.
type StockType string

const (
	StockLimited   StockType = "limited"
	StockUnlimited StockType = "unlimited"
)

// Payout holds the price and bank details of a paid ticket.
type Payout struct {
	Price         float64
	Bank          string
	AccountNumber string
	AccountName   string
}

// TicketPricing is a tagged variant: Payout is set only for paid tickets.
type TicketPricing struct {
	Type   TicketType
	Payout *Payout
}

// TicketStock is a tagged variant: Available is set only for limited stock.
type TicketStock struct {
	Type      StockType
	Available *int
}

// NewTicketPricing builds the pricing variant for t.
func NewTicketPricing(t TicketType, payout *Payout) TicketPricing {
	if t != TicketPaid {
		payout = nil
	}
	return TicketPricing{Type: t, Payout: payout}
}

// NewTicketStock builds the stock variant for t.
func NewTicketStock(t StockType, available *int) TicketStock {
	if t != StockLimited {
		available = nil
	}
	return TicketStock{Type: t, Available: available}
}

// Socials are optional links shown on a ticket page.
type Socials struct {
	WebURL    string `json:"webUrl,omitempty" bson:"webUrl,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Telegram  string `json:"telegram,omitempty" bson:"telegram,omitempty"`
}

// Ticket is a ticket type attached to an event.
type Ticket struct {
	ID                string
	EventID           string
	TicketName        string
	Pricing           TicketPricing
	Stock             TicketStock
	PurchaseLimit     int
	Benefits          string
	TicketDescription string
	Socials           Socials
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ticketJSON struct {
	ID                string     `json:"id,omitempty"`
	EventID           string     `json:"eventId"`
	TicketName        string     `json:"ticketName"`
	TicketType        TicketType `json:"ticketType"`
	TicketStock       StockType  `json:"ticketStock"`
	AvailableTickets  *int       `json:"availableTickets,omitempty"`
	PurchaseLimit     int        `json:"purchaseLimit"`
	TicketPrice       *float64   `json:"ticketPrice,omitempty"`
	Bank              string     `json:"bank,omitempty"`
	AccountNumber     string     `json:"accountNumber,omitempty"`
	AccountName       string     `json:"accountName,omitempty"`
	Benefits          string     `json:"benefits"`
	TicketDescription string     `json:"ticketDescription"`
	Socials           Socials    `json:"socials"`
	CreatedAt         time.Time  `json:"createdAt,omitzero"`
	UpdatedAt         time.Time  `json:"updatedAt,omitzero"`
}

func (t Ticket) toJSON() ticketJSON {
	w := ticketJSON{
		ID:                t.ID,
		EventID:           t.EventID,
		TicketName:        t.TicketName,
		TicketType:        t.Pricing.Type,
		TicketStock:       t.Stock.Type,
		PurchaseLimit:     t.PurchaseLimit,
		Benefits:          t.Benefits,
		TicketDescription: t.TicketDescription,
		Socials:           t.Socials,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.Stock.Available != nil {
		available := *t.Stock.Available
		w.AvailableTickets = &available
	}
	if p := t.Pricing.Payout; p != nil {
		price := p.Price
		w.TicketPrice = &price
		w.Bank, w.AccountNumber, w.AccountName = p.Bank, p.AccountNumber, p.AccountName
	}

	return w
}

func (w ticketJSON) toTicket() Ticket {
	var payout *Payout
	if w.TicketPrice != nil || w.Bank != "" || w.AccountNumber != "" || w.AccountName != "" {
		payout = &Payout{Bank: w.Bank, AccountNumber: w.AccountNumber, AccountName: w.AccountName}
		if w.TicketPrice != nil {
			payout.Price = *w.TicketPrice
		}
	}

	return Ticket{
		ID:                w.ID,
		EventID:           w.EventID,
		TicketName:        w.TicketName,
		Pricing:           NewTicketPricing(w.TicketType, payout),
		Stock:             NewTicketStock(w.TicketStock, w.AvailableTickets),
		PurchaseLimit:     w.PurchaseLimit,
		Benefits:          w.Benefits,
		TicketDescription: w.TicketDescription,
		Socials:           w.Socials,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}

// MarshalJSON flattens the pricing and stock variants.
func (t Ticket) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toJSON())
}

// UnmarshalJSON decodes the flat wire shape on top of the current value.
func (t *Ticket) UnmarshalJSON(b []byte) error {
	w := t.toJSON()
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*t = w.toTicket()
	return nil
}

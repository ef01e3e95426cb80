package store

import (
	"time"

	"github.com/MKhiriev/evently/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userDocument is the BSON shape of a user. Optional secrets are omitted
// when nil, so replacing a document clears them.
type userDocument struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty"`
	FirstName                string             `bson:"firstName"`
	LastName                 string             `bson:"lastName"`
	Username                 string             `bson:"username"`
	Email                    string             `bson:"email"`
	Password                 string             `bson:"password"`
	AcceptedTerms            bool               `bson:"acceptedTerms"`
	IsVerified               bool               `bson:"isVerified"`
	EmailVerificationToken   *string            `bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpires *time.Time         `bson:"emailVerificationExpires,omitempty"`
	ResetPasswordOTP         *string            `bson:"resetPasswordOTP,omitempty"`
	ResetPasswordExpires     *time.Time         `bson:"resetPasswordExpires,omitempty"`
	CreatedAt                time.Time          `bson:"createdAt"`
	UpdatedAt                time.Time          `bson:"updatedAt"`
}

func newUserDocument(u models.User) userDocument {
	doc := userDocument{
		FirstName:                u.FirstName,
		LastName:                 u.LastName,
		Username:                 u.Username,
		Email:                    models.NormalizeEmail(u.Email),
		Password:                 u.PasswordDigest,
		AcceptedTerms:            u.AcceptedTerms,
		IsVerified:               u.IsVerified,
		EmailVerificationToken:   u.EmailVerificationToken,
		EmailVerificationExpires: u.EmailVerificationExpires,
		ResetPasswordOTP:         u.ResetPasswordOTP,
		ResetPasswordExpires:     u.ResetPasswordExpires,
		CreatedAt:                u.CreatedAt,
		UpdatedAt:                u.UpdatedAt,
	}
	if oid, ok := objectID(u.ID); ok {
		doc.ID = oid
	}

	return doc
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:                       d.ID.Hex(),
		FirstName:                d.FirstName,
		LastName:                 d.LastName,
		Username:                 d.Username,
		Email:                    d.Email,
		PasswordDigest:           d.Password,
		AcceptedTerms:            d.AcceptedTerms,
		IsVerified:               d.IsVerified,
		EmailVerificationToken:   d.EmailVerificationToken,
		EmailVerificationExpires: utcTime(d.EmailVerificationExpires),
		ResetPasswordOTP:         d.ResetPasswordOTP,
		ResetPasswordExpires:     utcTime(d.ResetPasswordExpires),
		CreatedAt:                d.CreatedAt.UTC(),
		UpdatedAt:                d.UpdatedAt.UTC(),
	}
}

type eventDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	EventName     string             `bson:"eventName"`
	Category      string             `bson:"category"`
	Description   string             `bson:"description"`
	StartDate     time.Time          `bson:"startDate"`
	EndDate       time.Time          `bson:"endDate"`
	StartTime     string             `bson:"startTime"`
	EndTime       string             `bson:"endTime"`
	EventLocation string             `bson:"eventLocation"`
	Country       string             `bson:"country,omitempty"`
	State         string             `bson:"state,omitempty"`
	Location      string             `bson:"location,omitempty"`
	URL           string             `bson:"url,omitempty"`
	EventImage    string             `bson:"eventImage"`
	CreatedBy     primitive.ObjectID `bson:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// newEventDocument converts e; ok is false when e.CreatedBy is not an
// ObjectID.
func newEventDocument(e models.Event) (eventDocument, bool) {
	createdBy, ok := objectID(e.CreatedBy)
	if !ok {
		return eventDocument{}, false
	}

	doc := eventDocument{
		EventName:     e.EventName,
		Category:      e.Category,
		Description:   e.Description,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		EventLocation: string(e.Location.Mode),
		URL:           e.Location.URL,
		EventImage:    e.EventImage,
		CreatedBy:     createdBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if v := e.Location.Venue; v != nil {
		doc.Country, doc.State, doc.Location = v.Country, v.State, v.Location
	}
	if oid, ok := objectID(e.ID); ok {
		doc.ID = oid
	}

	return doc, true
}

func (d eventDocument) toModel() models.Event {
	var venue *models.Venue
	if d.Country != "" || d.State != "" || d.Location != "" {
		venue = &models.Venue{Country: d.Country, State: d.State, Location: d.Location}
	}

	return models.Event{
		ID:          d.ID.Hex(),
		EventName:   d.EventName,
		Category:    d.Category,
		Description: d.Description,
		StartDate:   d.StartDate.UTC(),
		EndDate:     d.EndDate.UTC(),
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Location:    models.NewEventLocation(models.LocationMode(d.EventLocation), venue, d.URL),
		EventImage:  d.EventImage,
		CreatedBy:   d.CreatedBy.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type ticketDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	EventID           primitive.ObjectID `bson:"eventId"`
	TicketName        string             `bson:"ticketName"`
	TicketType        string             `bson:"ticketType"`
	TicketStock       string             `bson:"ticketStock"`
	AvailableTickets  *int               `bson:"availableTickets,omitempty"`
	PurchaseLimit     int                `bson:"purchaseLimit"`
	TicketPrice       *float64           `bson:"ticketPrice,omitempty"`
	Bank              string             `bson:"bank,omitempty"`
	AccountNumber     string             `bson:"accountNumber,omitempty"`
	AccountName       string             `bson:"accountName,omitempty"`
	Benefits          string             `bson:"benefits"`
	TicketDescription string             `bson:"ticketDescription"`
	Socials           models.Socials     `bson:"socials"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// newTicketDocument converts t; ok is false when t.EventID is not an
// ObjectID.
func newTicketDocument(t models.Ticket) (ticketDocument, bool) {
	eventID, ok := objectID(t.EventID)
	if !ok {
		return ticketDocument{}, false
	}

	doc := ticketDocument{
		EventID:           eventID,
		TicketName:        t.TicketName,
		TicketType:        string(t.Pricing.Type),
		TicketStock:       string(t.Stock.Type),
		AvailableTickets:  t.Stock.Available,
		PurchaseLimit:     t.PurchaseLimit,
		Benefits:          t.Benefits,
		TicketDescription: t.TicketDescription,
		Socials:           t.Socials,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if p := t.Pricing.Payout; p != nil {
		price := p.Price
		doc.TicketPrice = &price
		doc.Bank, doc.AccountNumber, doc.AccountName = p.Bank, p.AccountNumber, p.AccountName
	}
	if oid, ok := objectID(t.ID); ok {
		doc.ID = oid
	}

	return doc, true
}

func (d ticketDocument) toModel() models.Ticket {
	var payout *models.Payout
	if d.TicketPrice != nil {
		payout = &models.Payout{Price: *d.TicketPrice, Bank: d.Bank, AccountNumber: d.AccountNumber, AccountName: d.AccountName}
	}

	return models.Ticket{
		ID:                d.ID.Hex(),
		EventID:           d.EventID.Hex(),
		TicketName:        d.TicketName,
		Pricing:           models.NewTicketPricing(models.TicketType(d.TicketType), payout),
		Stock:             models.NewTicketStock(models.StockType(d.TicketStock), d.AvailableTickets),
		PurchaseLimit:     d.PurchaseLimit,
		Benefits:          d.Benefits,
		TicketDescription: d.TicketDescription,
		Socials:           d.Socials,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

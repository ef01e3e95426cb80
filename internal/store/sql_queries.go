package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/evently/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable   = "users"
	eventsTable  = "events"
	ticketsTable = "tickets"

	usersEmailConstraint    = "users_email_key"
	usersUsernameConstraint = "users_username_key"
)

var userColumns = []string{
	"id",
	"first_name",
	"last_name",
	"username",
	"email",
	"password_digest",
	"accepted_terms",
	"is_verified",
	"email_verification_token",
	"email_verification_expires",
	"reset_password_otp",
	"reset_password_expires",
	"created_at",
	"updated_at",
}

var eventColumns = []string{
	"id",
	"event_name",
	"category",
	"description",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"location_mode",
	"country",
	"state",
	"location",
	"url",
	"event_image",
	"created_by",
	"created_at",
	"updated_at",
}

var ticketColumns = []string{
	"id",
	"event_id",
	"ticket_name",
	"ticket_type",
	"ticket_stock",
	"available_tickets",
	"purchase_limit",
	"ticket_price",
	"bank",
	"account_number",
	"account_name",
	"benefits",
	"ticket_description",
	"socials",
	"created_at",
	"updated_at",
}

// returning renders a RETURNING clause for columns.
func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userValues returns the writable user columns. Secret pointers map to NULL
// when nil, so a single statement always writes or clears each pair.
func userValues(u models.User) map[string]any {
	return map[string]any{
		"first_name":                 u.FirstName,
		"last_name":                  u.LastName,
		"username":                   u.Username,
		"email":                      models.NormalizeEmail(u.Email),
		"password_digest":            u.PasswordDigest,
		"accepted_terms":             u.AcceptedTerms,
		"is_verified":                u.IsVerified,
		"email_verification_token":   u.EmailVerificationToken,
		"email_verification_expires": u.EmailVerificationExpires,
		"reset_password_otp":         u.ResetPasswordOTP,
		"reset_password_expires":     u.ResetPasswordExpires,
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Username,
		&u.Email,
		&u.PasswordDigest,
		&u.AcceptedTerms,
		&u.IsVerified,
		&u.EmailVerificationToken,
		&u.EmailVerificationExpires,
		&u.ResetPasswordOTP,
		&u.ResetPasswordExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func eventValues(e models.Event) map[string]any {
	values := map[string]any{
		"event_name":    e.EventName,
		"category":      e.Category,
		"description":   e.Description,
		"start_date":    e.StartDate,
		"end_date":      e.EndDate,
		"start_time":    e.StartTime,
		"end_time":      e.EndTime,
		"location_mode": string(e.Location.Mode),
		"country":       "",
		"state":         "",
		"location":      "",
		"url":           e.Location.URL,
		"event_image":   e.EventImage,
		"created_by":    e.CreatedBy,
	}
	if v := e.Location.Venue; v != nil {
		values["country"] = v.Country
		values["state"] = v.State
		values["location"] = v.Location
	}

	return values
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e                        models.Event
		mode                     string
		country, state, location string
		url                      string
	)
	err := row.Scan(
		&e.ID,
		&e.EventName,
		&e.Category,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.StartTime,
		&e.EndTime,
		&mode,
		&country,
		&state,
		&location,
		&url,
		&e.EventImage,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return models.Event{}, err
	}

	var venue *models.Venue
	if country != "" || state != "" || location != "" {
		venue = &models.Venue{Country: country, State: state, Location: location}
	}
	e.Location = models.NewEventLocation(models.LocationMode(mode), venue, url)

	return e, nil
}

func ticketValues(t models.Ticket) (map[string]any, error) {
	socials, err := json.Marshal(t.Socials)
	if err != nil {
		return nil, fmt.Errorf("error encoding socials: %w", err)
	}

	values := map[string]any{
		"event_id":           t.EventID,
		"ticket_name":        t.TicketName,
		"ticket_type":        string(t.Pricing.Type),
		"ticket_stock":       string(t.Stock.Type),
		"available_tickets":  t.Stock.Available,
		"purchase_limit":     t.PurchaseLimit,
		"ticket_price":       nil,
		"bank":               "",
		"account_number":     "",
		"account_name":       "",
		"benefits":           t.Benefits,
		"ticket_description": t.TicketDescription,
		"socials":            socials,
	}
	if p := t.Pricing.Payout; p != nil {
		values["ticket_price"] = p.Price
		values["bank"] = p.Bank
		values["account_number"] = p.AccountNumber
		values["account_name"] = p.AccountName
	}

	return values, nil
}

func scanTicket(row rowScanner) (models.Ticket, error) {
	var (
		t                                models.Ticket
		ticketType, stockType            string
		available                        *int
		price                            *float64
		bank, accountNumber, accountName string
		socials                          []byte
	)
	err := row.Scan(
		&t.ID,
		&t.EventID,
		&t.TicketName,
		&ticketType,
		&stockType,
		&available,
		&t.PurchaseLimit,
		&price,
		&bank,
		&accountNumber,
		&accountName,
		&t.Benefits,
		&t.TicketDescription,
		&socials,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return models.Ticket{}, err
	}

	if len(socials) > 0 {
		if err = json.Unmarshal(socials, &t.Socials); err != nil {
			return models.Ticket{}, fmt.Errorf("error decoding socials: %w", err)
		}
	}

	var payout *models.Payout
	if price != nil {
		payout = &models.Payout{Price: *price, Bank: bank, AccountNumber: accountNumber, AccountName: accountName}
	}
	t.Pricing = models.NewTicketPricing(models.TicketType(ticketType), payout)
	t.Stock = models.NewTicketStock(models.StockType(stockType), available)

	return t, nil
}

// selectFrom starts a SELECT of columns from table.
func selectFrom(table string, columns []string) sq.SelectBuilder {
	return psql.Select(columns...).From(table)
}

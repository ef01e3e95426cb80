package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/evently/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists credential records.
//
// Implementations lower-case and trim e-mail addresses on every write and
// lookup, and translate unique-index violations into
// [ErrEmailAlreadyExists] or [ErrUsernameAlreadyExists] without mutating
// the stored record.
type UserRepository interface {
	// Create inserts a new account and returns it with the store-assigned
	// ID and timestamps.
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	// FindByVerificationToken returns the account whose verification token
	// equals token and expires after now.
	FindByVerificationToken(ctx context.Context, token string, now time.Time) (models.User, error)
	// Update replaces every mutable field of the account identified by
	// user.ID. Nil secret pointers clear the stored value.
	Update(ctx context.Context, user models.User) (models.User, error)
	// ClearExpiredSecrets removes reset OTPs and verification tokens that
	// expired before now and returns the number of touched accounts.
	ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error)
}

// EventRepository persists events.
type EventRepository interface {
	Create(ctx context.Context, event models.Event) (models.Event, error)
	FindByID(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Event, error)
	Update(ctx context.Context, event models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

// TicketRepository persists ticket types.
type TicketRepository interface {
	Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	FindByID(ctx context.Context, id string) (models.Ticket, error)
	List(ctx context.Context) ([]models.Ticket, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Ticket, error)
	Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// ImageStorage stores event images and returns the URL they are served from.
type ImageStorage interface {
	Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

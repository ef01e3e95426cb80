package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/evently/models"
)

// AuthService drives the account lifecycle: registration, e-mail
// verification, sessions and password reset.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	VerifyEmail(ctx context.Context, token string) error
	ResendVerificationEmail(ctx context.Context, email string) error
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	GetCurrentUser(ctx context.Context, token string) (models.Profile, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService edits account profiles.
type UserService interface {
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.Profile, error)
}

// EventService manages events. Updates take the raw JSON body and apply only
// the fields present in it.
type EventService interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListUserEvents(ctx context.Context, userID string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch json.RawMessage) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	UploadEventImage(ctx context.Context, id, userID string, image models.ImageUpload) (models.Event, error)
}

// TicketService manages the ticket types of events.
type TicketService interface {
	CreateTicket(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	ListEventTickets(ctx context.Context, eventID string) ([]models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, patch json.RawMessage) (models.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

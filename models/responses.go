package models

// MessageResponse is the minimal JSON body returned by most endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned for every failed request. Stack is filled only
// outside production.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Session is the result of a successful login.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    Profile `json:"user"`
}

// UserResponse wraps a sanitized profile.
type UserResponse struct {
	Message string  `json:"message,omitempty"`
	User    Profile `json:"user"`
}

// EventResponse wraps a single event.
type EventResponse struct {
	Message string `json:"message,omitempty"`
	Event   Event  `json:"event"`
}

// TicketResponse wraps a single ticket.
type TicketResponse struct {
	Message string `json:"message,omitempty"`
	Ticket  Ticket `json:"ticket"`
}

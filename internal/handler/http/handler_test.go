package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService. Each method delegates to
// the matching func field; an unset field panics so unexpected calls fail
// loudly.
type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) error
	verifyEmailFn    func(ctx context.Context, token string) error
	resendFn         func(ctx context.Context, email string) error
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.Session, error)
	forgotPasswordFn func(ctx context.Context, email string) error
	verifyOTPFn      func(ctx context.Context, req models.VerifyOTPRequest) error
	resetPasswordFn  func(ctx context.Context, req models.ResetPasswordRequest) error
	currentUserFn    func(ctx context.Context, token string) (models.Profile, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) error {
	return m.verifyEmailFn(ctx, token)
}

func (m *mockAuthService) ResendVerificationEmail(ctx context.Context, email string) error {
	return m.resendFn(ctx, email)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.forgotPasswordFn(ctx, email)
}

func (m *mockAuthService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) error {
	return m.verifyOTPFn(ctx, req)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return m.resetPasswordFn(ctx, req)
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, token string) (models.Profile, error) {
	return m.currentUserFn(ctx, token)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockUserService struct {
	updateUserFn func(ctx context.Context, id string, req models.UpdateUserRequest) (models.Profile, error)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.Profile, error) {
	return m.updateUserFn(ctx, id, req)
}

type mockEventService struct {
	createFn     func(ctx context.Context, event models.Event) (models.Event, error)
	getFn        func(ctx context.Context, id string) (models.Event, error)
	listFn       func(ctx context.Context) ([]models.Event, error)
	listByUserFn func(ctx context.Context, userID string) ([]models.Event, error)
	updateFn     func(ctx context.Context, id string, patch json.RawMessage) (models.Event, error)
	deleteFn     func(ctx context.Context, id string) error
	uploadFn     func(ctx context.Context, id, userID string, image models.ImageUpload) (models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	return m.createFn(ctx, event)
}

func (m *mockEventService) GetEvent(ctx context.Context, id string) (models.Event, error) {
	return m.getFn(ctx, id)
}

func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}

func (m *mockEventService) ListUserEvents(ctx context.Context, userID string) ([]models.Event, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockEventService) UpdateEvent(ctx context.Context, id string, patch json.RawMessage) (models.Event, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockEventService) DeleteEvent(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockEventService) UploadEventImage(ctx context.Context, id, userID string, image models.ImageUpload) (models.Event, error) {
	return m.uploadFn(ctx, id, userID, image)
}

type mockTicketService struct {
	createFn      func(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	getFn         func(ctx context.Context, id string) (models.Ticket, error)
	listFn        func(ctx context.Context) ([]models.Ticket, error)
	listByEventFn func(ctx context.Context, eventID string) ([]models.Ticket, error)
	updateFn      func(ctx context.Context, id string, patch json.RawMessage) (models.Ticket, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockTicketService) CreateTicket(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	return m.createFn(ctx, ticket)
}

func (m *mockTicketService) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	return m.getFn(ctx, id)
}

func (m *mockTicketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return m.listFn(ctx)
}

func (m *mockTicketService) ListEventTickets(ctx context.Context, eventID string) ([]models.Ticket, error) {
	return m.listByEventFn(ctx, eventID)
}

func (m *mockTicketService) UpdateTicket(ctx context.Context, id string, patch json.RawMessage) (models.Ticket, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockTicketService) DeleteTicket(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler creates a Handler with a nop logger and no services.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// newHandlerWith builds a Handler over the given services. Nil services are
// left nil; handlers that would call them are not exercised.
func newHandlerWith(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, config.StructuredConfig{}, nil, logger.Nop())
}

// doJSON sends body to router and returns the recorder.
func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(router, newRequest(method, path, body))
}

// decodeBody unmarshals the recorded JSON response into a value of type T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// newRequest builds a request with an optional JSON body.
func newRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// invalidInput mimics the service's validation errors: it matches
// service.ErrValidation and keeps the client message of the wrapped error.
type invalidInput struct{ error }

func (e invalidInput) Unwrap() []error { return []error{service.ErrValidation, e.error} }

func invalid(err error) error { return invalidInput{err} }

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rec).Message
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_CopiesSettings(t *testing.T) {
	svcs := &service.Services{}
	metrics := http.NotFoundHandler()
	cfg := config.StructuredConfig{
		App: config.App{Environment: "production"},
		Server: config.Server{
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{"https://evently.example"},
			RateLimit:      100,
			RateWindow:     15 * time.Minute,
		},
	}
	log := logger.Nop()

	h := NewHandler(svcs, cfg, metrics, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.True(t, h.production)
	assert.Equal(t, 5*time.Second, h.requestTimeout)
	assert.Equal(t, []string{"https://evently.example"}, h.allowedOrigins)
	assert.Equal(t, 100, h.rateLimit)
	assert.Equal(t, 15*time.Minute, h.rateWindow)
	assert.NotNil(t, h.metrics)
	assert.Equal(t, log, h.logger)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, config.StructuredConfig{}, nil, logger.Nop())
	h2 := NewHandler(&service.Services{}, config.StructuredConfig{}, nil, logger.Nop())

	assert.NotSame(t, h1, h2)
	assert.False(t, h1.production)
}

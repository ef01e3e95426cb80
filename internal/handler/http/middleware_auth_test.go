package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: authSvc,
		},
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/events/create", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

// ---- Table test ----

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		parseErr       error
		wantStatus     int
		wantMsg        string
		wantNextCalled bool
		wantParseCall  bool
	}{
		{
			name:           "valid bearer token",
			authHeader:     "Bearer good",
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
			wantParseCall:  true,
		},
		{
			name:           "scheme is case insensitive",
			authHeader:     "bearer good",
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
			wantParseCall:  true,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgNoTokenProvided,
		},
		{
			name:       "scheme without token",
			authHeader: "Bearer",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgInvalidToken,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic YWxpY2U6c2VjcmV0",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgInvalidToken,
		},
		{
			name:          "token rejected by service",
			authHeader:    "Bearer expired",
			parseErr:      service.ErrInvalidToken,
			wantStatus:    http.StatusUnauthorized,
			wantMsg:       app.MsgInvalidToken,
			wantParseCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseCalled := false
			auth := &mockAuthService{
				parseTokenFn: func(_ context.Context, token string) (models.Token, error) {
					parseCalled = true
					if tt.parseErr != nil {
						return models.Token{}, tt.parseErr
					}
					assert.Equal(t, "good", token)
					return models.Token{UserID: "u-1"}, nil
				},
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(newHandlerWithAuthService(auth), tt.authHeader, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			assert.Equal(t, tt.wantParseCall, parseCalled)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, messageOf(t, rr))
			}
		})
	}
}

// ---- User ID reaches the handler ----

func TestAuth_StoresUserIDInContext(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{UserID: "u-42"}, nil
		},
	}

	var got string
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = utils.GetUserIDFromContext(r.Context())
	})

	executeAuth(newHandlerWithAuthService(auth), "Bearer anything", next)

	require.True(t, ok)
	assert.Equal(t, "u-42", got)
}

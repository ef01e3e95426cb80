package http

import (
	"net/http"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and, on success, stores the user's ID in
// the request context with [utils.WithUserID] before delegating to next. The
// request logger is tagged with user_id as well.
//
// A missing header is answered with [service.ErrUnauthorized]; a malformed
// header or a token that fails validation with [service.ErrInvalidToken].
// Both map to HTTP 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Msg("request without authorization header")
			h.writeError(w, r, service.ErrUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")
			h.writeError(w, r, service.ErrInvalidToken)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx = log.WithUser(token.UserID).WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
	"github.com/samber/oops"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:            http.StatusBadRequest,
	service.ErrDuplicateEmail:        http.StatusBadRequest,
	service.ErrDuplicateUsername:     http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusBadRequest,
	service.ErrEmailNotVerified:      http.StatusBadRequest,
	service.ErrAlreadyVerified:       http.StatusBadRequest,
	service.ErrInvalidOrExpiredToken: http.StatusBadRequest,
	service.ErrInvalidOrExpiredOTP:   http.StatusBadRequest,

	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrInvalidToken: http.StatusUnauthorized,
	service.ErrForbidden:    http.StatusForbidden,

	service.ErrUserNotFound:   http.StatusNotFound,
	service.ErrEventNotFound:  http.StatusNotFound,
	service.ErrTicketNotFound: http.StatusNotFound,

	service.ErrImageUploadDisabled: http.StatusServiceUnavailable,

	ErrInvalidRequestBody: http.StatusBadRequest,
	ErrImageRequired:      http.StatusBadRequest,
	ErrEventIDRequired:    http.StatusBadRequest,
	ErrUserIDRequired:     http.StatusBadRequest,
	ErrRouteNotFound:      http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers the request with the status mapped from err. Unmapped
// errors become a generic 500 whose stack trace is included only outside
// production.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status != http.StatusInternalServerError {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Message: err.Error()}, status)
		return
	}

	resp := models.ErrorResponse{Message: app.MsgInternalServerError}
	stack := stackOf(err)
	log.Error().Err(err).Str("stack", stack).Msg("internal error")
	if !h.production {
		resp.Stack = stack
	}

	_, _ = utils.WriteJSON(w, resp, status)
}

func stackOf(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		return oopsErr.Stacktrace()
	}
	return err.Error()
}

func writeMessage(w http.ResponseWriter, msg string, status int) {
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: msg}, status)
}

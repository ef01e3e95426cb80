package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
)

// readBody decodes the JSON request body into dst. On failure it answers the
// request itself and returns false.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.ReadJSON(w, r, dst); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		h.writeError(w, r, ErrInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.readBody(w, r, &req) {
		return
	}

	if err := h.services.AuthService.Register(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgUserRegistered, http.StatusCreated)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if err := h.services.AuthService.VerifyEmail(r.Context(), token); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgEmailVerified, http.StatusOK)
}

func (h *Handler) resendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if !h.readBody(w, r, &req) {
		return
	}

	if err := h.services.AuthService.ResendVerificationEmail(r.Context(), req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgVerificationResent, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.readBody(w, r, &req) {
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", session.User.ID).Msg("user successfully logged in")

	_, _ = utils.WriteJSON(w, models.LoginResponse{
		Message: app.MsgLoginSuccessful,
		Token:   session.Token,
		User:    session.User,
	}, http.StatusOK)
}

// me resolves the bearer token to the current profile. A missing or
// malformed header is treated as no token at all.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		token = ""
	}

	profile, err := h.services.AuthService.GetCurrentUser(r.Context(), token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.UserResponse{User: profile}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, r, ErrUserIDRequired)
		return
	}

	var req models.UpdateUserRequest
	if !h.readBody(w, r, &req) {
		return
	}

	profile, err := h.services.UserService.UpdateUser(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.UserResponse{Message: app.MsgUserUpdated, User: profile}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if !h.readBody(w, r, &req) {
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgOTPSent, http.StatusOK)
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if !h.readBody(w, r, &req) {
		return
	}

	if err := h.services.AuthService.VerifyOTP(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgOTPVerified, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.readBody(w, r, &req) {
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgPasswordResetSucceeded, http.StatusOK)
}

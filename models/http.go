package models

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	AcceptedTerms bool   `json:"acceptedTerms"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest is the body of the endpoints that only need an address:
// POST /resend-verification-email and POST /forgot-password.
type EmailRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is the body of POST /verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest is the body of POST /reset-password.
// OTP may be omitted only when the server runs with reset re-validation
// disabled.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp,omitempty"`
	NewPassword string `json:"newPassword"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
// Only non-nil fields are applied.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// IsEmpty reports whether the request carries no field to update.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Username == nil && r.Email == nil
}

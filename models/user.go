package models

import (
	"crypto/subtle"
	"strings"
	"time"
)

// User is the credential record of an account.
// Secret material (digest, verification token, reset OTP) never leaves the
// server: those fields are excluded from JSON and must only be exposed through
// [User.Profile].
type User struct {
	// ID is assigned by the store at creation and never changes.
	ID string `json:"id"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Username is unique across all accounts.
	Username string `json:"username"`

	// Email is unique across all accounts and always stored lower-cased
	// and trimmed (see [NormalizeEmail]).
	Email string `json:"email"`

	// PasswordDigest is the bcrypt output for the account password.
	PasswordDigest string `json:"-"`

	AcceptedTerms bool `json:"acceptedTerms"`

	// IsVerified gates login until the e-mail address is confirmed.
	IsVerified bool `json:"isVerified"`

	EmailVerificationToken   *string    `json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`

	// ResetPasswordOTP and ResetPasswordExpires are set and cleared together.
	ResetPasswordOTP     *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the sanitized view of a [User] returned to clients.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns the sanitized view of u.
func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
	}
}

// SetVerificationToken replaces any outstanding verification token.
func (u *User) SetVerificationToken(token string, expires time.Time) {
	u.EmailVerificationToken = &token
	u.EmailVerificationExpires = &expires
}

// MarkVerified flags the account as verified and drops the verification token.
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.EmailVerificationToken = nil
	u.EmailVerificationExpires = nil
}

// SetResetOTP replaces any outstanding reset OTP together with its expiry.
func (u *User) SetResetOTP(otp string, expires time.Time) {
	u.ResetPasswordOTP = &otp
	u.ResetPasswordExpires = &expires
}

// ClearResetOTP removes the reset OTP and its expiry.
func (u *User) ClearResetOTP() {
	u.ResetPasswordOTP = nil
	u.ResetPasswordExpires = nil
}

// ResetOTPMatches reports whether otp equals the outstanding reset OTP and
// the OTP has not expired at now.
func (u User) ResetOTPMatches(otp string, now time.Time) bool {
	if u.ResetPasswordOTP == nil || u.ResetPasswordExpires == nil || otp == "" {
		return false
	}
	if now.After(*u.ResetPasswordExpires) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(*u.ResetPasswordOTP), []byte(otp)) == 1
}

// NormalizeEmail lower-cases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
//
// The user identifier is carried both in the standard "sub" claim and in the
// "userId" claim so that clients decoding the token do not need to know the
// JWT registered claim names.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Token wraps a signed session token with the identity it carries.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID and Email are copied from the verified claims.
	UserID string `json:"-"`
	Email  string `json:"-"`

	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

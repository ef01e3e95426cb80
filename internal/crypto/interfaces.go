package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns passwords into one-way digests and checks candidates
// against them. Digests are self-describing, so the cost used at hash time
// travels with the digest.
type PasswordHasher interface {
	// Hash returns the digest of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches digest. A malformed digest
	// never matches.
	Verify(password, digest string) bool
}

// SecretGenerator issues the single-use secrets sent to users by e-mail.
type SecretGenerator interface {
	// VerificationToken returns a random hex string of at least 40
	// characters used in e-mail verification links.
	VerificationToken() (string, error)

	// OTP returns a uniformly random six-digit one-time password.
	OTP() (string, error)
}

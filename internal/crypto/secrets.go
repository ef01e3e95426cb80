package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

const (
	verificationTokenBytes = 32

	otpMin = 100000
	otpMax = 999999
)

type secretGenerator struct {
	random io.Reader
}

// NewSecretGenerator returns a [SecretGenerator] reading from the OS CSPRNG.
func NewSecretGenerator() SecretGenerator {
	return &secretGenerator{random: rand.Reader}
}

func (g *secretGenerator) VerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("error generating verification token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// OTP draws from [otpMin, otpMax] so the code never has a leading zero.
func (g *secretGenerator) OTP() (string, error) {
	n, err := rand.Int(g.random, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("error generating otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

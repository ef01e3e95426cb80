package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/evently/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailComposer_Verification(t *testing.T) {
	c := newMailComposer("https://evently.example/api/users/verify-email?src=mail")

	msg, err := c.verification(models.User{Email: "a@x.com", FirstName: "Ada"}, "abc123", 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, subjectVerifyEmail, msg.Subject)
	assert.Contains(t, msg.Text, "Hello Ada,")
	assert.Contains(t, msg.Text, "https://evently.example/api/users/verify-email?src=mail&token=abc123")
	assert.Contains(t, msg.Text, "24 hours")
	assert.Contains(t, msg.HTML, `href="https://evently.example/api/users/verify-email?src=mail&amp;token=abc123"`)
}

func TestMailComposer_ResetOTP(t *testing.T) {
	c := newMailComposer("")

	msg, err := c.resetOTP(models.User{Email: "a@x.com", Username: "<ab1>"}, "482913", 10*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, subjectPasswordReset, msg.Subject)
	assert.Contains(t, msg.Text, "Hello <ab1>,")
	assert.Contains(t, msg.Text, "482913")
	assert.Contains(t, msg.Text, "10 minutes")
	assert.Contains(t, msg.HTML, "Hello &lt;ab1&gt;,")
	assert.Contains(t, msg.HTML, "<strong>482913</strong>")
}

func TestMailComposer_BadVerificationURL(t *testing.T) {
	c := newMailComposer("http://[::1")

	_, err := c.verification(models.User{Email: "a@x.com"}, "abc", time.Hour)
	assert.Error(t, err)
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: time.Hour, want: "1 hour"},
		{in: 24 * time.Hour, want: "24 hours"},
		{in: time.Minute, want: "1 minute"},
		{in: 10 * time.Minute, want: "10 minutes"},
		{in: 90 * time.Second, want: "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, humanDuration(tt.in))
		})
	}
}

package service

import (
	"bytes"
	htmltemplate "html/template"
	"net/url"
	"strconv"
	texttemplate "text/template"
	"time"

	"github.com/MKhiriev/evently/models"
)

const (
	subjectVerifyEmail   = "Verify your email"
	subjectPasswordReset = "Password Reset OTP"
)

var (
	verifyText = texttemplate.Must(texttemplate.New("verify").Parse(
		`Hello {{.Name}},

Please verify your email by opening the link below:
{{.Link}}

The link expires in {{.TTL}}.
`))

	verifyHTML = htmltemplate.Must(htmltemplate.New("verify").Parse(
		`<p>Hello {{.Name}},</p>
<p>Please verify your email by clicking the link below:</p>
<p><a href="{{.Link}}">Verify email</a></p>
<p>The link expires in {{.TTL}}.</p>
`))

	otpText = texttemplate.Must(texttemplate.New("otp").Parse(
		`Hello {{.Name}},

Your OTP for password reset is {{.Code}}. It is valid for {{.TTL}}.
`))

	otpHTML = htmltemplate.Must(htmltemplate.New("otp").Parse(
		`<p>Hello {{.Name}},</p>
<p>Your OTP for password reset is <strong>{{.Code}}</strong>.</p>
<p>It is valid for {{.TTL}}.</p>
`))
)

type mailData struct {
	Name string
	Link string
	Code string
	TTL  string
}

// mailComposer renders the account e-mails.
type mailComposer struct {
	verificationURL string
}

func newMailComposer(verificationURL string) *mailComposer {
	return &mailComposer{verificationURL: verificationURL}
}

func (c *mailComposer) verification(user models.User, token string, ttl time.Duration) (models.EmailMessage, error) {
	link, err := c.verificationLink(token)
	if err != nil {
		return models.EmailMessage{}, err
	}

	return render(user.Email, subjectVerifyEmail, mailData{
		Name: displayName(user),
		Link: link,
		TTL:  humanDuration(ttl),
	}, verifyText, verifyHTML)
}

func (c *mailComposer) resetOTP(user models.User, otp string, ttl time.Duration) (models.EmailMessage, error) {
	return render(user.Email, subjectPasswordReset, mailData{
		Name: displayName(user),
		Code: otp,
		TTL:  humanDuration(ttl),
	}, otpText, otpHTML)
}

func (c *mailComposer) verificationLink(token string) (string, error) {
	u, err := url.Parse(c.verificationURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func render(to, subject string, data mailData, text *texttemplate.Template, html *htmltemplate.Template) (models.EmailMessage, error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := text.Execute(&textBuf, data); err != nil {
		return models.EmailMessage{}, err
	}
	if err := html.Execute(&htmlBuf, data); err != nil {
		return models.EmailMessage{}, err
	}

	return models.EmailMessage{
		To:      to,
		Subject: subject,
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}

func displayName(user models.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}

func humanDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		if h := int(d / time.Hour); h != 1 {
			return strconv.Itoa(h) + " hours"
		}
		return "1 hour"
	case d%time.Minute == 0:
		if m := int(d / time.Minute); m != 1 {
			return strconv.Itoa(m) + " minutes"
		}
		return "1 minute"
	default:
		return d.String()
	}
}

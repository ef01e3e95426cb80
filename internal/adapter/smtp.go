package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/models"
	"github.com/wneessen/go-mail"
)

const (
	smtpTimeout = 15 * time.Second
	smtpSSLPort = 465
)

// mailDialer is the part of *mail.Client the SMTP sender needs.
type mailDialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type smtpSender struct {
	dialer mailDialer
	from   string

	logger *logger.Logger
}

// NewSMTPSender constructs an [EmailSender] delivering through the SMTP
// server at cfg.Host:cfg.Port. Port 465 uses implicit TLS; any other port
// upgrades with STARTTLS when the server offers it. Authentication is
// skipped when no username is configured.
func NewSMTPSender(cfg config.Mail, log *logger.Logger) (EmailSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: empty smtp host", ErrInvalidMailConfig)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(smtpTimeout),
	}
	if cfg.Port == smtpSSLPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMailConfig, err)
	}

	return newSMTPSender(client, senderAddress(cfg), log), nil
}

func newSMTPSender(dialer mailDialer, from string, log *logger.Logger) *smtpSender {
	return &smtpSender{dialer: dialer, from: from, logger: log}
}

// Send implements [EmailSender]. A new connection is dialed per message.
func (s *smtpSender) Send(ctx context.Context, msg models.EmailMessage) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		s.logger.Err(err).Str("func", "*smtpSender.Send").Msg("error building message")
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	if err = s.dialer.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Err(err).Str("func", "*smtpSender.Send").Msg("smtp delivery failed")
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	s.logger.Debug().Str("func", "*smtpSender.Send").Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func (s *smtpSender) buildMessage(msg models.EmailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.from, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return m, nil
}

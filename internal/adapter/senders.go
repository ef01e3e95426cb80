package adapter

import (
	"fmt"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
)

// NewEmailSender returns the [EmailSender] for cfg.Provider.
func NewEmailSender(cfg config.Mail, log *logger.Logger) (EmailSender, error) {
	switch cfg.Provider {
	case config.MailProviderSMTP:
		return NewSMTPSender(cfg, log)
	case config.MailProviderHTTP:
		return NewHTTPSender(cfg, log)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMailProvider, cfg.Provider)
}

func senderAddress(cfg config.Mail) string {
	if cfg.From != "" {
		return cfg.From
	}
	return cfg.Username
}

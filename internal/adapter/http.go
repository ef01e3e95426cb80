package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/utils"
	"github.com/MKhiriev/evently/models"
)

const httpSendTimeout = 15 * time.Second

// httpSendRequest is the JSON payload accepted by the mail API.
type httpSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

type httpSender struct {
	client *utils.HTTPClient
	path   string
	apiKey string
	from   string

	logger *logger.Logger
}

// NewHTTPSender constructs an [EmailSender] that POSTs every message as JSON
// to cfg.APIURL, authenticating with cfg.APIKey as a bearer token.
//
// Returns an error if cfg.APIURL is empty or cannot be parsed as an absolute
// URL.
func NewHTTPSender(cfg config.Mail, log *logger.Logger) (EmailSender, error) {
	baseURL, path, err := splitAPIURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("%w: api url: %w", ErrInvalidMailConfig, err)
	}

	return &httpSender{
		client: utils.NewHTTPClient(baseURL, httpSendTimeout),
		path:   path,
		apiKey: cfg.APIKey,
		from:   senderAddress(cfg),
		logger: log,
	}, nil
}

func splitAPIURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("address must include host and scheme")
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	u.Path, u.RawQuery = "", ""

	return u.String(), path, nil
}

// Send implements [EmailSender].
func (h *httpSender) Send(ctx context.Context, msg models.EmailMessage) error {
	req := h.client.R().
		SetContext(ctx).
		SetBody(httpSendRequest{
			From:    h.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
		})
	if h.apiKey != "" {
		req.SetAuthToken(h.apiKey)
	}

	resp, err := req.Post(h.path)
	if err != nil {
		h.logger.Err(err).Str("func", "*httpSender.Send").Msg("mail api request failed")
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "*httpSender.Send").Int("status", resp.StatusCode()).Msg("mail api rejected message")
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	h.logger.Debug().Str("func", "*httpSender.Send").Str("subject", msg.Subject).Msg("email sent")
	return nil
}

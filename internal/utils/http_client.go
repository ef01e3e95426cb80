package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.mail.example", 10*time.Second)
//	resp, err := client.R().SetBody(msg).Post("/send")
type HTTPClient struct {
	*resty.Client
}

const httpClientRetries = 2

// NewHTTPClient creates a client rooted at baseURL that sends and expects
// JSON. Requests are retried on transport errors and 5xx responses. A zero
// timeout leaves the request deadline to the caller's context.
//
// Each call returns an independent client instance with its own
// connection pool.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetRetryCount(httpClientRetries).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

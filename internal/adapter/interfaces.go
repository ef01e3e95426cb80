// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter delivers outbound e-mail for the evently server.
//
// The primary abstraction is [EmailSender], which decouples the service layer
// from the delivery provider. The package ships an SMTP implementation
// ([NewSMTPSender]) built on go-mail and an HTTP mail API implementation
// ([NewHTTPSender]) built on resty. [NewEmailSender] picks one from
// configuration.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of provider.
package adapter

import (
	"context"

	"github.com/MKhiriev/evently/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

// EmailSender delivers a single e-mail message. Implementations return only
// after the provider accepted or rejected the message.
type EmailSender interface {
	// Send delivers msg to msg.To. The plain-text body is always sent; the
	// HTML body is attached as an alternative when present.
	Send(ctx context.Context, msg models.EmailMessage) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/evently/internal/app"
)

// Sentinel errors produced by the transport layer itself. Their messages are
// returned to clients.
var (
	// ErrInvalidRequestBody is returned when a JSON body cannot be decoded.
	ErrInvalidRequestBody = errors.New(app.MsgInvalidRequestBody)

	// ErrRouteNotFound is returned for paths and methods no route serves.
	ErrRouteNotFound = errors.New(app.MsgRouteNotFound)

	// ErrImageRequired is returned when an upload request carries no image
	// part.
	ErrImageRequired = errors.New(app.MsgImageRequired)

	// ErrEventIDRequired and ErrUserIDRequired are returned when a path
	// parameter is blank.
	ErrEventIDRequired = errors.New(app.MsgEventIDRequired)
	ErrUserIDRequired  = errors.New(app.MsgUserIDRequired)
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/samber/oops"

	"github.com/MKhiriev/evently/internal/app"
)

// securityHeaders sets the conservative response headers every JSON API
// answer carries.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("X-Content-Type-Options", "nosniff")
		hdr.Set("X-Frame-Options", "DENY")
		hdr.Set("Referrer-Policy", "no-referrer")
		hdr.Set("Cross-Origin-Resource-Policy", "same-origin")
		hdr.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// recoverer turns a panicking handler into a regular 500 answered through
// writeError, so the body keeps the {message, stack} shape.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.writeError(w, r, oops.In("http").With("path", r.URL.Path).Errorf("handler panicked: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

// tooManyRequests answers requests rejected by the rate limiter.
func tooManyRequests(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
}

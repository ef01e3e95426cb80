// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux for the method check. It does not
// use Handler.Init so no services are needed.
func buildRouter() *chi.Mux {
	h := newTestHandler()
	router := chi.NewRouter()

	router.Get("/api/events", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("events"))
	})
	router.Post("/api/events", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Delete("/api/tickets", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(h.CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"GET registered", http.MethodGet, "/api/events", http.StatusOK},
		{"POST registered", http.MethodPost, "/api/events", http.StatusCreated},
		{"DELETE registered", http.MethodDelete, "/api/tickets", http.StatusNoContent},
		{"PUT on events", http.MethodPut, "/api/events", http.StatusNotFound},
		{"PATCH on events", http.MethodPatch, "/api/events", http.StatusNotFound},
		{"GET on tickets", http.MethodGet, "/api/tickets", http.StatusNotFound},
		{"OPTIONS on tickets", http.MethodOptions, "/api/tickets", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_AnswersWithJSON(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/tickets", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, app.MsgRouteNotFound, messageOf(t, rr))
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "events", rr.Body.String())
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method := http.MethodGet
			if i%2 == 1 {
				method = http.MethodPatch
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/api/events", nil))
			done <- rr.Code
		}(i)
	}

	for i := 0; i < n; i++ {
		code := <-done
		assert.True(t, code == http.StatusOK || code == http.StatusNotFound, "unexpected status code: %d", code)
	}
}

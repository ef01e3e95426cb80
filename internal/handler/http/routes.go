package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Init builds the router with the full middleware chain and every route of
// the API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.recoverer)
	router.Use(securityHeaders)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader},
		MaxAge:         300,
	}))
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	if h.rateLimit > 0 && h.rateWindow > 0 {
		router.Use(httprate.Limit(h.rateLimit, h.rateWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(tooManyRequests),
		))
	}
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.root)
	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics)
	}

	router.Route("/api/users", h.userRoutes)
	// The same user routes answer without the prefix.
	router.Group(h.userRoutes)

	router.Route("/api/events", func(r chi.Router) {
		r.With(h.auth).Post("/create", h.createEvent)
		r.Get("/", h.listEvents)
		r.Get("/user/{userId}", h.listUserEvents)
		r.Get("/{id}", h.getEvent)
		r.Put("/{id}", h.updateEvent)
		r.Delete("/{id}", h.deleteEvent)
		r.With(h.auth).Post("/{id}/image", h.uploadEventImage)
	})

	router.Route("/api/tickets", func(r chi.Router) {
		r.Post("/create", h.createTicket)
		r.Get("/", h.listTickets)
		r.Get("/event/{eventId}", h.listEventTickets)
		r.Get("/{id}", h.getTicket)
		r.Put("/{id}", h.updateTicket)
		r.Delete("/{id}", h.deleteTicket)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.CheckHTTPMethod(router))

	return router
}

func (h *Handler) userRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Get("/verify-email", h.verifyEmail)
	r.Post("/resend-verification-email", h.resendVerificationEmail)
	r.Post("/login", h.login)
	r.Get("/me", h.me)
	r.Put("/users/{id}", h.updateUser)
	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/verify-otp", h.verifyOTP)
	r.Post("/reset-password", h.resetPassword)
}

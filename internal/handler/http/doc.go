// Package http implements the REST transport of the evently server.
//
// It wires the chi router, decodes request bodies into typed request models,
// delegates to the service layer and translates domain errors into status
// codes through a single status map. Cross-cutting concerns such as request
// tracing, access logging, metrics, authentication, CORS, rate limiting and
// security headers are handled here before requests reach the handlers.
package http

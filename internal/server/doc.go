// Package server wires and runs the application's transport servers.
//
// It binds the HTTP API and the gRPC health endpoint, serves them side by
// side and stops both gracefully when the run context is cancelled.
package server

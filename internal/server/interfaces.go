package server

import "context"

// Server defines the lifecycle contract of the transport servers managed by
// this package.
type Server interface {
	// Run serves every enabled transport until ctx is done or one of them
	// fails, then shuts all of them down.
	Run(ctx context.Context) error
}

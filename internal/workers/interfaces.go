// Package workers runs the background jobs of the server.
//
// It defines the Worker interface and a Workers aggregate that runs every
// registered worker until the shared context is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// Package delivery defines the contract every transport (HTTP, workers)
// fulfills so the entrypoint can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}

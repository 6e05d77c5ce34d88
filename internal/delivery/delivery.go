// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a serving surface of the application (HTTP today). Serve blocks
// until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}

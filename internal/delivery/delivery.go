// Package delivery defines the transport entry points of the service.
package delivery

import "context"

// Delivery is a serving surface (HTTP API, worker endpoint) started by the
// application container.
type Delivery interface {
	Serve(ctx context.Context) error
}

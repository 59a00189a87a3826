// Package feed pushes report events to connected admin dashboards. Events
// arrive on a Redis channel so every instance sees every submission.
package feed

import "laporantdx/backend/internal/models"

// Client is one connected dashboard.
type Client interface {
	// GetID returns the connection's unique id.
	GetID() string
	// GetSendChannel returns the channel the hub delivers events on.
	GetSendChannel() chan<- models.FeedEvent
	// Run starts the client's read and write pumps.
	Run()
	// Close stops the client. It must be safe to call more than once.
	Close()
}

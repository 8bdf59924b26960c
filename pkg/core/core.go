package core

import (
	"context"
)

// QuoteSource fetches the current price of a single asset from a remote API
type QuoteSource interface {
	Name() string
	Asset() string
	Fetch(ctx context.Context) (Price, error)
}

// Notifier delivers a rendered message to the configured destination
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// StateStore keeps the readings of the last cycle for the next one
type StateStore interface {
	// Load returns the last saved readings, all absent when nothing was saved yet
	Load() (Readings, error)

	// Save replaces the stored readings
	Save(readings Readings) error

	// Close releases the underlying resources
	Close() error
}

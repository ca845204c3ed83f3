package events

import "context"

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

// NewNoopPublisher creates a publisher that discards all events.
func NewNoopPublisher() NoopPublisher { return NoopPublisher{} }

// PublishOrderPlaced discards the event.
func (NoopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

// Close is a no-op.
func (NoopPublisher) Close() {}

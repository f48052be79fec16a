package subscription

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no subscription exists for a key.
var ErrNotFound = errors.New("subscription not found")

// Repository provides operations on the subscriptions table. The webhook
// ingestor is the only writer; the license service only reads.
type Repository interface {
	// Get returns the subscription for (userID, repository), or ErrNotFound.
	Get(ctx context.Context, userID, repository string) (*Subscription, error)

	// Upsert atomically creates or replaces the record for the
	// subscription's key. Plan and status are always written together.
	Upsert(ctx context.Context, sub *Subscription) error

	// SetStatus updates only the status field for (userID, repository).
	// A missing record is a no-op, not an error.
	SetStatus(ctx context.Context, userID, repository string, status Status) error
}

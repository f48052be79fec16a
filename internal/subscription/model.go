package subscription

import "time"

// Status is the lifecycle state of a subscription.
type Status string

const (
	// StatusActive marks a subscription that currently licenses the agent.
	StatusActive Status = "active"

	// StatusInactive marks a cancelled or non-premium subscription. Records
	// are never deleted, only deactivated.
	StatusInactive Status = "inactive"
)

// Subscription represents a row in the subscriptions table, keyed by
// (github_user_id, repository).
type Subscription struct {
	UserID     string
	Repository string
	Plan       string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

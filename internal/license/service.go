package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agentforge/license-server/internal/identity"
	"github.com/agentforge/license-server/internal/marketplace"
	"github.com/agentforge/license-server/internal/subscription"
)

// PremiumPlan is the marketplace plan name that licenses the agent.
const PremiumPlan = "premium"

// Decision is the licensing verdict for a validation request. It is returned
// synchronously and never persisted.
type Decision struct {
	Licensed bool   `json:"licensed"`
	Message  string `json:"message,omitempty"`
}

// Service renders license decisions. It reads the subscription store and the
// marketplace purchase list but never writes either.
type Service struct {
	verifier    identity.Verifier
	subs        subscription.Repository
	marketplace marketplace.Client // nil when no administrative token is configured
}

// NewService creates a license Service. marketplaceClient may be nil, in
// which case the fallback check is skipped.
func NewService(verifier identity.Verifier, subs subscription.Repository, marketplaceClient marketplace.Client) *Service {
	return &Service{
		verifier:    verifier,
		subs:        subs,
		marketplace: marketplaceClient,
	}
}

// Validate resolves the token to an identity and decides whether the
// (identity, repository) pair is licensed. It fails with
// identity.ErrAuthFailed when no identity can be established and with a
// wrapped store error when the subscription lookup breaks; every other path
// produces a Decision. The store takes precedence over the marketplace
// fallback, and fallback failures degrade to "no match".
func (s *Service) Validate(ctx context.Context, token, repository string) (*Decision, error) {
	id, err := s.verifier.Verify(ctx, token, repository)
	if err != nil {
		return nil, err
	}

	sub, err := s.subs.Get(ctx, id.ID, repository)
	if err != nil && !errors.Is(err, subscription.ErrNotFound) {
		return nil, fmt.Errorf("looking up subscription: %w", err)
	}
	if sub != nil && sub.Status == subscription.StatusActive {
		slog.Info("active subscription found", "login", id.Login, "repository", repository)
		return &Decision{Licensed: true}, nil
	}

	if s.marketplace != nil {
		purchases, err := s.marketplace.ListPurchases(ctx)
		if err != nil {
			// Best-effort check: an unreachable marketplace must not fail
			// the request, the store lookup already answered "no record".
			slog.Warn("marketplace purchase lookup failed", "error", err)
		} else {
			for _, p := range purchases {
				if p.AccountLogin == id.Login && p.PlanName == PremiumPlan {
					slog.Info("premium marketplace purchase found", "login", id.Login)
					return &Decision{Licensed: true}, nil
				}
			}
		}
	}

	return &Decision{Licensed: false, Message: "No active subscription found"}, nil
}

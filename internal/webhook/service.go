package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/go-github/v55/github"

	"github.com/agentforge/license-server/internal/license"
	"github.com/agentforge/license-server/internal/subscription"
)

// ErrMalformedPayload is returned when the webhook body is not a parseable
// marketplace event or lacks the fields needed to key the store.
var ErrMalformedPayload = errors.New("malformed marketplace event payload")

// Marketplace event actions that mutate the store. Any other action is
// acknowledged and ignored so new event types do not break ingestion.
const (
	actionPurchased              = "purchased"
	actionChanged                = "changed"
	actionCancelled              = "cancelled"
	actionPendingChangeCancelled = "pending_change_cancelled"
)

// Service applies marketplace purchase events to the subscription store.
// It is the store's only writer.
type Service struct {
	secret string
	subs   subscription.Repository
}

// NewService creates a webhook Service. An empty secret disables signature
// verification.
func NewService(secret string, subs subscription.Repository) *Service {
	return &Service{secret: secret, subs: subs}
}

// Ingest authenticates the raw body against the signature header and applies
// the event. Signature verification happens before the payload is
// interpreted; a rejected request causes no writes.
func (s *Service) Ingest(ctx context.Context, body []byte, signature string) error {
	if err := ValidateSignature(s.secret, body, signature); err != nil {
		return err
	}

	var event github.MarketplacePurchaseEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return s.apply(ctx, &event)
}

// apply runs the subscription state machine for one event.
func (s *Service) apply(ctx context.Context, event *github.MarketplacePurchaseEvent) error {
	action := event.GetAction()
	purchase := event.GetMarketplacePurchase()
	account := purchase.GetAccount().GetLogin()

	slog.Info("received marketplace event", "action", action, "account", account)

	switch action {
	case actionPurchased, actionChanged:
		if event.Sender == nil || purchase == nil || account == "" {
			return ErrMalformedPayload
		}
		plan := purchase.GetPlan().GetName()

		// Plan-based gating: a "changed" event that downgrades off the
		// premium plan deactivates the subscription.
		status := subscription.StatusInactive
		if plan == license.PremiumPlan {
			status = subscription.StatusActive
		}

		sub := &subscription.Subscription{
			UserID:     strconv.FormatInt(event.GetSender().GetID(), 10),
			Repository: account,
			Plan:       plan,
			Status:     status,
		}
		if err := s.subs.Upsert(ctx, sub); err != nil {
			return fmt.Errorf("applying %s event: %w", action, err)
		}

	case actionCancelled, actionPendingChangeCancelled:
		if event.Sender == nil || purchase == nil || account == "" {
			return ErrMalformedPayload
		}
		userID := strconv.FormatInt(event.GetSender().GetID(), 10)
		if err := s.subs.SetStatus(ctx, userID, account, subscription.StatusInactive); err != nil {
			return fmt.Errorf("applying %s event: %w", action, err)
		}

	default:
		slog.Debug("ignoring marketplace event", "action", action)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"labstock/internal/model"
	"labstock/internal/repository"

	"github.com/jackc/pgx/v5"
)

// Notifier delivers an outcome message to a requester. Implementations
// must not block the caller; delivery is best-effort and failures stay
// inside the implementation.
type Notifier interface {
	Notify(to, subject, body string)
}

// CheckoutService manages the checkout request lifecycle: submission,
// pending review, and resolution with stock enforcement. A request
// transitions exactly once from requested to approved or rejected.
type CheckoutService struct {
	checkouts  *repository.CheckoutRepository
	components *repository.ComponentRepository
	notifier   Notifier
}

func NewCheckoutService(checkouts *repository.CheckoutRepository, components *repository.ComponentRepository, notifier Notifier) *CheckoutService {
	return &CheckoutService{
		checkouts:  checkouts,
		components: components,
		notifier:   notifier,
	}
}

// Submit creates a checkout request in the requested state. Stock is
// not checked or reserved here; requests are advisory until reviewed.
func (s *CheckoutService) Submit(ctx context.Context, userID, componentID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	return s.checkouts.Insert(ctx, userID, componentID, quantity)
}

func (s *CheckoutService) ListPending(ctx context.Context) ([]model.PendingCheckout, error) {
	return s.checkouts.ListPending(ctx)
}

func (s *CheckoutService) ListForUser(ctx context.Context, userID int) ([]model.UserRequest, error) {
	return s.checkouts.ListForUser(ctx, userID)
}

func (s *CheckoutService) PendingCount(ctx context.Context) (int, error) {
	return s.checkouts.CountPending(ctx)
}

// Approve resolves a pending request: inside one transaction it locks
// the request row, decrements the component's stock, and marks the
// request approved. The lock serializes concurrent resolutions of the
// same request, so the loser sees no pending row and gets ErrNotFound.
// On insufficient stock the request stays in the requested state.
func (s *CheckoutService) Approve(ctx context.Context, requestID int) error {
	var pending *model.PendingCheckout

	err := s.checkouts.RunAtomic(ctx, func(ctx context.Context) error {
		var err error
		pending, err = s.checkouts.GetPendingForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load checkout: %w", err)
		}

		ok, err := s.components.Decrement(ctx, pending.ComponentID, pending.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			if have, qerr := s.components.GetQuantity(ctx, pending.ComponentID); qerr == nil {
				return fmt.Errorf("%w: have %d, want %d", ErrInsufficientStock, have, pending.Quantity)
			}
			return ErrInsufficientStock
		}

		ok, err = s.checkouts.MarkApproved(ctx, requestID)
		if err != nil {
			return err
		}
		if !ok {
			// The row was locked above, so this only fires if the
			// request vanished between the two statements.
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(
		pending.Email,
		fmt.Sprintf("Component Approved: %s", pending.ComponentName),
		fmt.Sprintf("<p>Hi %s,<br>Your request for %d×%s was approved.</p>",
			pending.Username, pending.Quantity, pending.ComponentName),
	)
	return nil
}

// Reject resolves a pending request without touching stock. The reason
// is stored as given; empty string is allowed.
func (s *CheckoutService) Reject(ctx context.Context, requestID int, reason string) error {
	var pending *model.PendingCheckout

	err := s.checkouts.RunAtomic(ctx, func(ctx context.Context) error {
		var err error
		pending, err = s.checkouts.GetPendingForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load checkout: %w", err)
		}

		ok, err := s.checkouts.MarkRejected(ctx, requestID, reason)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(
		pending.Email,
		fmt.Sprintf("Component Rejected: %s", pending.ComponentName),
		fmt.Sprintf("<p>Hi %s,<br>Your request for %d×%s was rejected.<br>Reason: %s</p>",
			pending.Username, pending.Quantity, pending.ComponentName, reason),
	)
	return nil
}

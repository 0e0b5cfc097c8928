package repository

import (
	"context"
	"fmt"

	"labstock/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckoutRepository struct {
	db *pgxpool.Pool
}

func NewCheckoutRepository(db *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// RunAtomic executes fn within a transaction. Repository calls made
// inside fn, including those of other repositories, run on the same
// transaction.
func (r *CheckoutRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return runAtomic(ctx, r.db, fn)
}

func (r *CheckoutRepository) Insert(ctx context.Context, userID, componentID, quantity int) (int, error) {
	var id int
	err := executor(ctx, r.db).QueryRow(ctx,
		"INSERT INTO checkouts (user_id, component_id, quantity, status) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, componentID, quantity, model.StatusRequested,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert checkout: %w", err)
	}
	return id, nil
}

// ListPending returns requested checkouts oldest first, joined with the
// requester and component for the admin review queue.
func (r *CheckoutRepository) ListPending(ctx context.Context) ([]model.PendingCheckout, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT c.id, u.username, u.email, c.component_id, comp.name, c.quantity, c.checkout_date
		FROM checkouts c
		JOIN users u ON u.id = c.user_id
		JOIN components comp ON comp.id = c.component_id
		WHERE c.status = $1
		ORDER BY c.checkout_date, c.id`,
		model.StatusRequested,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending checkouts: %w", err)
	}
	defer rows.Close()

	pending := []model.PendingCheckout{}
	for rows.Next() {
		var p model.PendingCheckout
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.ComponentID, &p.ComponentName, &p.Quantity, &p.CheckoutDate); err != nil {
			return nil, fmt.Errorf("failed to scan pending checkout: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// ListForUser returns all of a user's checkouts newest first.
func (r *CheckoutRepository) ListForUser(ctx context.Context, userID int) ([]model.UserRequest, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT c.id, comp.name, c.quantity, c.status, c.rejection_reason, c.checkout_date
		FROM checkouts c
		JOIN components comp ON comp.id = c.component_id
		WHERE c.user_id = $1
		ORDER BY c.checkout_date DESC, c.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user checkouts: %w", err)
	}
	defer rows.Close()

	requests := []model.UserRequest{}
	for rows.Next() {
		var req model.UserRequest
		if err := rows.Scan(&req.ID, &req.ComponentName, &req.Quantity, &req.Status, &req.RejectionReason, &req.CheckoutDate); err != nil {
			return nil, fmt.Errorf("failed to scan user checkout: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *CheckoutRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := executor(ctx, r.db).QueryRow(ctx,
		"SELECT COUNT(*) FROM checkouts WHERE status = $1", model.StatusRequested,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending checkouts: %w", err)
	}
	return count, nil
}

// GetPendingForUpdate locks the checkout row and returns it joined with
// requester and component data. Returns pgx.ErrNoRows when no checkout
// with that id is in the requested state, which covers both "never
// existed" and "already resolved".
func (r *CheckoutRepository) GetPendingForUpdate(ctx context.Context, id int) (*model.PendingCheckout, error) {
	var p model.PendingCheckout
	err := executor(ctx, r.db).QueryRow(ctx, `
		SELECT c.id, u.username, u.email, c.component_id, comp.name, c.quantity, c.checkout_date
		FROM checkouts c
		JOIN users u ON u.id = c.user_id
		JOIN components comp ON comp.id = c.component_id
		WHERE c.id = $1 AND c.status = $2
		FOR UPDATE OF c`,
		id, model.StatusRequested,
	).Scan(&p.ID, &p.Username, &p.Email, &p.ComponentID, &p.ComponentName, &p.Quantity, &p.CheckoutDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkApproved transitions a requested checkout to approved. Returns
// false when the checkout is no longer in the requested state.
func (r *CheckoutRepository) MarkApproved(ctx context.Context, id int) (bool, error) {
	tag, err := executor(ctx, r.db).Exec(ctx,
		"UPDATE checkouts SET status = $1 WHERE id = $2 AND status = $3",
		model.StatusApproved, id, model.StatusRequested,
	)
	if err != nil {
		return false, fmt.Errorf("failed to approve checkout: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkRejected transitions a requested checkout to rejected, storing
// the reason (empty string allowed).
func (r *CheckoutRepository) MarkRejected(ctx context.Context, id int, reason string) (bool, error) {
	tag, err := executor(ctx, r.db).Exec(ctx,
		"UPDATE checkouts SET status = $1, rejection_reason = $2 WHERE id = $3 AND status = $4",
		model.StatusRejected, reason, id, model.StatusRequested,
	)
	if err != nil {
		return false, fmt.Errorf("failed to reject checkout: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

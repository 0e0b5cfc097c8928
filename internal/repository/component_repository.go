package repository

import (
	"context"
	"errors"
	"fmt"

	"labstock/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ComponentRepository struct {
	db *pgxpool.Pool
}

func NewComponentRepository(db *pgxpool.Pool) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func (r *ComponentRepository) Insert(ctx context.Context, name, category string, quantity int) (int, error) {
	var id int
	err := executor(ctx, r.db).QueryRow(ctx,
		"INSERT INTO components (name, category, quantity) VALUES ($1, $2, $3) RETURNING id",
		name, category, quantity,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert component: %w", err)
	}
	return id, nil
}

func (r *ComponentRepository) ListAll(ctx context.Context) ([]model.Component, error) {
	return r.list(ctx, "SELECT id, name, category, quantity FROM components")
}

// ListDashboard orders components for the dashboard view.
func (r *ComponentRepository) ListDashboard(ctx context.Context) ([]model.Component, error) {
	return r.list(ctx, "SELECT id, name, category, quantity FROM components ORDER BY category, name")
}

func (r *ComponentRepository) list(ctx context.Context, sql string) ([]model.Component, error) {
	rows, err := executor(ctx, r.db).Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	components := []model.Component{}
	for rows.Next() {
		var c model.Component
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (r *ComponentRepository) GetQuantity(ctx context.Context, componentID int) (int, error) {
	var quantity int
	err := executor(ctx, r.db).QueryRow(ctx,
		"SELECT quantity FROM components WHERE id = $1", componentID,
	).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to get component quantity: %w", err)
	}
	return quantity, nil
}

// Decrement subtracts amount from the component's stock as a single
// check-and-decrement statement. Returns false when stock is
// insufficient (or the component does not exist); stock is untouched
// in that case.
func (r *ComponentRepository) Decrement(ctx context.Context, componentID, amount int) (bool, error) {
	tag, err := executor(ctx, r.db).Exec(ctx,
		"UPDATE components SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1",
		amount, componentID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/config"
	"storefront/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// ListByUser returns the caller's orders, most recent first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := config.DB.Query(ctx, `
		SELECT id, user_id, order_id, item_summary, total::text, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

// FindByToken fetches one order by its external token, scoped to the owner.
func (r *OrderRepository) FindByToken(ctx context.Context, userID int, token string) (*models.Order, error) {
	row := config.DB.QueryRow(ctx, `
		SELECT id, user_id, order_id, item_summary, total::text, status, created_at
		FROM orders
		WHERE user_id = $1 AND order_id = $2
	`, userID, token)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var total string

	err := row.Scan(&o.ID, &o.UserID, &o.OrderID, &o.ItemSummary, &total, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	o.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("invalid stored total %q: %w", total, err)
	}
	return &o, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/config"
	"storefront/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStore is the storage contract the cart service works against.
type CartStore interface {
	Add(ctx context.Context, userID int, productLabel string, unitPrice decimal.Decimal) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID int) ([]models.CartItem, error)
	DeleteOne(ctx context.Context, userID, itemID int) error
	Clear(ctx context.Context, userID int) (int64, error)
}

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) Add(ctx context.Context, userID int, productLabel string, unitPrice decimal.Decimal) (*models.CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, product_label, unit_price, status, added_at)
		VALUES ($1, $2, $3, 'Unpaid', $4)
		RETURNING id, added_at
	`
	item := &models.CartItem{
		UserID:       userID,
		ProductLabel: productLabel,
		UnitPrice:    unitPrice,
		Status:       "Unpaid",
	}

	err := config.DB.QueryRow(ctx, query, userID, productLabel, unitPrice.StringFixed(2), time.Now()).
		Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

// ListByUser returns the caller's cart, most recently added first.
func (r *CartRepository) ListByUser(ctx context.Context, userID int) ([]models.CartItem, error) {
	rows, err := config.DB.Query(ctx, `
		SELECT id, user_id, product_label, unit_price::text, status, added_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	return scanCartItems(rows)
}

func (r *CartRepository) DeleteOne(ctx context.Context, userID, itemID int) error {
	tag, err := config.DB.Exec(ctx,
		"DELETE FROM cart_items WHERE id=$1 AND user_id=$2", itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear deletes every item the user owns and reports how many went away.
// Zero is a valid result, not an error.
func (r *CartRepository) Clear(ctx context.Context, userID int) (int64, error) {
	tag, err := config.DB.Exec(ctx, "DELETE FROM cart_items WHERE user_id=$1", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanCartItems(rows pgx.Rows) ([]models.CartItem, error) {
	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		var price string

		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductLabel, &price, &item.Status, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		unitPrice, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
		}
		item.UnitPrice = unitPrice

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	return items, nil
}

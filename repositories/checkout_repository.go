package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/config"
	"storefront/models"

	"github.com/jackc/pgx/v5"
)

var ErrDuplicateOrderID = errors.New("order id already exists")

// CheckoutStore runs the checkout commit as one atomic unit. Every step
// inside fn sees the same transaction; if fn returns an error the whole
// transaction rolls back and none of the steps took effect.
type CheckoutStore interface {
	WithinTx(ctx context.Context, fn func(tx CheckoutTx) error) error
}

// CheckoutTx is the step surface available inside a checkout transaction.
type CheckoutTx interface {
	// LockCart reads the caller's cart most-recent-first and locks the rows
	// against concurrent checkout attempts until the transaction ends.
	LockCart(ctx context.Context, userID int) ([]models.CartItem, error)
	// SaveShippingProfile overwrites the user's stored contact and shipping
	// fields with the submitted values.
	SaveShippingProfile(ctx context.Context, userID int, form models.CheckoutForm) error
	// InsertOrder persists the order and its line items, returning
	// ErrDuplicateOrderID when the external token collides.
	InsertOrder(ctx context.Context, order *models.Order) error
	// ClearCart deletes the caller's cart rows.
	ClearCart(ctx context.Context, userID int) (int64, error)
}

type CheckoutRepository struct{}

func NewCheckoutRepository() *CheckoutRepository {
	return &CheckoutRepository{}
}

func (r *CheckoutRepository) WithinTx(ctx context.Context, fn func(tx CheckoutTx) error) error {
	pgTx, err := config.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer pgTx.Rollback(ctx)

	if err := fn(&checkoutTx{tx: pgTx}); err != nil {
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type checkoutTx struct {
	tx pgx.Tx
}

func (t *checkoutTx) LockCart(ctx context.Context, userID int) ([]models.CartItem, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT id, user_id, product_label, unit_price::text, status, added_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at DESC, id DESC
		FOR UPDATE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}
	defer rows.Close()

	return scanCartItems(rows)
}

func (t *checkoutTx) SaveShippingProfile(ctx context.Context, userID int, form models.CheckoutForm) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE users
		SET first_name=$1, last_name=$2, email=$3, phone_number=$4,
			address=$5, apartment=$6, city=$7, state=$8, zipcode=$9, country=$10,
			updated_at=$11
		WHERE id=$12
	`, form.FirstName, form.LastName, form.Email, form.PhoneNumber,
		form.Address, form.Apartment, form.City, form.State, form.Zipcode, form.Country,
		time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to save shipping profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (t *checkoutTx) InsertOrder(ctx context.Context, order *models.Order) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_id, item_summary, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, order.UserID, order.OrderID, order.ItemSummary, order.Total.StringFixed(2),
		order.Status, order.CreatedAt).Scan(&order.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrderID
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		line := &order.Items[i]
		line.OrderRef = order.ID

		err = t.tx.QueryRow(ctx, `
			INSERT INTO order_items (order_ref, product_label, unit_price, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, line.OrderRef, line.ProductLabel, line.UnitPrice.StringFixed(2), line.Quantity).
			Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	return nil
}

func (t *checkoutTx) ClearCart(ctx context.Context, userID int) (int64, error) {
	tag, err := t.tx.Exec(ctx, "DELETE FROM cart_items WHERE user_id=$1", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"storefront/models"
	"storefront/repositories"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// maxOrderIDAttempts bounds the whole-transaction retries on an order id
// collision. A Postgres unique violation poisons the transaction, so each
// retry re-runs the commit from the top with a fresh token.
const maxOrderIDAttempts = 3

// Mailer delivers checkout notifications. Implementations must be safe to
// call from the dispatch goroutine.
type Mailer interface {
	SendOrderConfirmation(to, name, orderID, itemSummary, total string) error
	SendOrderAlert(orderID, itemSummary, total string, form models.CheckoutForm) error
}

type CheckoutResult struct {
	OrderID     string
	ItemSummary string
	Total       string
}

// CheckoutService coordinates a checkout attempt: validate the submitted
// contact/shipping form, then atomically update the profile, build and
// persist the order, and clear the cart. Notifications go out after commit
// and never affect the outcome.
type CheckoutService struct {
	store  repositories.CheckoutStore
	mailer Mailer
	// dispatch runs the post-commit notification send; tests override it to
	// keep delivery synchronous.
	dispatch func(fn func())
}

func NewCheckoutService(store repositories.CheckoutStore, mailer Mailer) *CheckoutService {
	return &CheckoutService{
		store:    store,
		mailer:   mailer,
		dispatch: func(fn func()) { go fn() },
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, userID int, form models.CheckoutForm) (*CheckoutResult, error) {
	form.Trim()
	if errs := form.Validate(); len(errs) > 0 {
		return nil, FieldErrors(errs)
	}

	var order *models.Order
	var err error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		order, err = s.commit(ctx, userID, form)
		if !errors.Is(err, repositories.ErrDuplicateOrderID) {
			break
		}
		logger.Warn().Int("attempt", attempt+1).Msg("order id collision, retrying checkout transaction")
	}
	if err != nil {
		return nil, err
	}

	s.dispatch(func() { s.notify(form, order) })

	return &CheckoutResult{
		OrderID:     order.OrderID,
		ItemSummary: order.ItemSummary,
		Total:       order.Total.StringFixed(2),
	}, nil
}

// commit is one all-or-nothing attempt: lock the cart snapshot, overwrite the
// profile, insert the order and its lines, clear the cart. Any error rolls
// everything back, the cart included.
func (s *CheckoutService) commit(ctx context.Context, userID int, form models.CheckoutForm) (*models.Order, error) {
	var order *models.Order

	err := s.store.WithinTx(ctx, func(tx repositories.CheckoutTx) error {
		items, err := tx.LockCart(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		if err := tx.SaveShippingProfile(ctx, userID, form); err != nil {
			return err
		}

		order = BuildOrder(userID, items)
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}

		if _, err := tx.ClearCart(ctx, userID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// notify sends the customer confirmation and the admin alert. The order is
// already committed; failures are retried once, then logged and swallowed.
func (s *CheckoutService) notify(form models.CheckoutForm, order *models.Order) {
	total := order.Total.StringFixed(2)
	name := fmt.Sprintf("%s %s", form.FirstName, form.LastName)

	s.sendWithRetry("customer confirmation", order.OrderID, func() error {
		return s.mailer.SendOrderConfirmation(form.Email, name, order.OrderID, order.ItemSummary, total)
	})
	s.sendWithRetry("admin alert", order.OrderID, func() error {
		return s.mailer.SendOrderAlert(order.OrderID, order.ItemSummary, total, form)
	})
}

func (s *CheckoutService) sendWithRetry(kind, orderID string, send func() error) {
	err := send()
	if err == nil {
		return
	}
	if err = send(); err == nil {
		return
	}
	logger.Error().Err(err).Str("kind", kind).Str("order_id", orderID).Msg("notification delivery failed")
}

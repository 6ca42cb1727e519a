package services

import (
	"context"
	"errors"
	"testing"

	"storefront/models"
	"storefront/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() models.CheckoutForm {
	return models.CheckoutForm{
		FirstName:   "Test",
		LastName:    "Buyer",
		Email:       "buyer@test.com",
		PhoneNumber: "123456789",
		Address:     "123 Test St",
		City:        "Warsaw",
		State:       "Mazovia",
		Zipcode:     "00-000",
		Country:     "Poland",
	}
}

// newTestCheckout keeps notification dispatch synchronous.
func newTestCheckout(store *mockCheckoutStore, mailer *mockMailer) *CheckoutService {
	svc := NewCheckoutService(store, mailer)
	svc.dispatch = func(fn func()) { fn() }
	return svc
}

func TestCheckout_Success(t *testing.T) {
	store := &mockCheckoutStore{items: []models.CartItem{
		cartItem("ProductX", "50.00"),
		cartItem("ProductX", "50.00"),
	}}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	require.NoError(t, err)
	assert.Equal(t, "ProductX x2", result.ItemSummary)
	assert.Equal(t, "100.00", result.Total)
	assert.NotEmpty(t, result.OrderID)

	// Exactly one committed order, profile written, cart emptied.
	require.Len(t, store.insertedOrders, 1)
	assert.Equal(t, result.OrderID, store.insertedOrders[0].OrderID)
	require.Len(t, store.savedForms, 1)
	assert.Equal(t, "buyer@test.com", store.savedForms[0].Email)
	assert.Equal(t, 1, store.clearCalls)
	assert.Empty(t, store.items)

	// Both notifications went out with the committed values.
	assert.Equal(t, 1, mailer.confirmCalls)
	assert.Equal(t, 1, mailer.alertCalls)
	assert.Equal(t, "buyer@test.com", mailer.lastTo)
	assert.Equal(t, "Test Buyer", mailer.lastName)
	assert.Equal(t, result.OrderID, mailer.lastOrderID)
	assert.Equal(t, "100.00", mailer.lastTotal)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	store := &mockCheckoutStore{}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// Rejected before any mutation.
	assert.Empty(t, store.savedForms)
	assert.Empty(t, store.insertedOrders)
	assert.Zero(t, store.clearCalls)
	assert.Zero(t, mailer.confirmCalls)
}

func TestCheckout_MissingCityRejectedBeforeStore(t *testing.T) {
	store := &mockCheckoutStore{items: []models.CartItem{cartItem("A", "10.00")}}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	form := validForm()
	form.City = ""

	result, err := svc.Checkout(context.Background(), 42, form)

	assert.Nil(t, result)
	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "city")

	// Validation failures never open a transaction.
	assert.Zero(t, store.txCount)
	assert.Len(t, store.items, 1)
}

func TestCheckout_InsertFailureRollsBack(t *testing.T) {
	storageErr := errors.New("storage down")
	store := &mockCheckoutStore{
		items:      []models.CartItem{cartItem("A", "10.00")},
		insertErrs: []error{storageErr},
	}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, storageErr)

	// The transaction aborted: no order exists, the cart survived, and no
	// notification went out.
	assert.Empty(t, store.insertedOrders)
	assert.Len(t, store.items, 1)
	assert.Zero(t, mailer.confirmCalls)
	assert.Zero(t, mailer.alertCalls)
}

func TestCheckout_OrderIDCollisionRetries(t *testing.T) {
	store := &mockCheckoutStore{
		items:      []models.CartItem{cartItem("A", "10.00")},
		insertErrs: []error{repositories.ErrDuplicateOrderID},
	}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	require.NoError(t, err)
	assert.Equal(t, 2, store.txCount)
	require.Len(t, store.insertedOrders, 1)
	assert.Equal(t, result.OrderID, store.insertedOrders[0].OrderID)
}

func TestCheckout_CollisionRetriesExhausted(t *testing.T) {
	store := &mockCheckoutStore{
		items: []models.CartItem{cartItem("A", "10.00")},
		insertErrs: []error{
			repositories.ErrDuplicateOrderID,
			repositories.ErrDuplicateOrderID,
			repositories.ErrDuplicateOrderID,
		},
	}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, repositories.ErrDuplicateOrderID)
	assert.Equal(t, maxOrderIDAttempts, store.txCount)
	assert.Empty(t, store.insertedOrders)
	assert.Zero(t, mailer.confirmCalls)
}

func TestCheckout_NotificationFailureDoesNotFailCheckout(t *testing.T) {
	store := &mockCheckoutStore{items: []models.CartItem{cartItem("A", "10.00")}}
	mailer := &mockMailer{
		confirmErrs: []error{errors.New("smtp down"), errors.New("smtp down")},
		alertErrs:   []error{errors.New("smtp down"), errors.New("smtp down")},
	}
	svc := newTestCheckout(store, mailer)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	// The purchase already succeeded; delivery problems stay internal.
	require.NoError(t, err)
	assert.NotNil(t, result)
	require.Len(t, store.insertedOrders, 1)

	// One retry per message, then give up.
	assert.Equal(t, 2, mailer.confirmCalls)
	assert.Equal(t, 2, mailer.alertCalls)
}

func TestCheckout_NotificationRetrySucceeds(t *testing.T) {
	store := &mockCheckoutStore{items: []models.CartItem{cartItem("A", "10.00")}}
	mailer := &mockMailer{
		confirmErrs: []error{errors.New("transient")},
	}
	svc := newTestCheckout(store, mailer)

	_, err := svc.Checkout(context.Background(), 42, validForm())

	require.NoError(t, err)
	assert.Equal(t, 2, mailer.confirmCalls)
	assert.Equal(t, 1, mailer.alertCalls)
}

func TestCheckout_ConcurrentLoserSeesEmptyCart(t *testing.T) {
	// The row lock serializes two attempts on the same cart; the loser
	// observes the cart the winner already consumed.
	store := &mockCheckoutStore{items: []models.CartItem{cartItem("A", "10.00")}}
	mailer := &mockMailer{}
	svc := newTestCheckout(store, mailer)

	_, err := svc.Checkout(context.Background(), 42, validForm())
	require.NoError(t, err)

	result, err := svc.Checkout(context.Background(), 42, validForm())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Len(t, store.insertedOrders, 1)
}

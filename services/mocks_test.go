package services

import (
	"context"

	"storefront/models"
	"storefront/repositories"

	"github.com/shopspring/decimal"
)

// mockCheckoutStore implements repositories.CheckoutStore and CheckoutTx in
// one struct so tests can observe every step of the commit.
type mockCheckoutStore struct {
	items []models.CartItem

	lockErr  error
	saveErr  error
	clearErr error
	// insertErrs is consumed one per InsertOrder call; nil once exhausted.
	insertErrs []error

	txCount        int
	savedForms     []models.CheckoutForm
	insertedOrders []models.Order
	clearCalls     int
}

func (m *mockCheckoutStore) WithinTx(ctx context.Context, fn func(tx repositories.CheckoutTx) error) error {
	m.txCount++
	return fn(m)
}

func (m *mockCheckoutStore) LockCart(ctx context.Context, userID int) ([]models.CartItem, error) {
	if m.lockErr != nil {
		return nil, m.lockErr
	}
	return m.items, nil
}

func (m *mockCheckoutStore) SaveShippingProfile(ctx context.Context, userID int, form models.CheckoutForm) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedForms = append(m.savedForms, form)
	return nil
}

func (m *mockCheckoutStore) InsertOrder(ctx context.Context, order *models.Order) error {
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	m.insertedOrders = append(m.insertedOrders, *order)
	return nil
}

func (m *mockCheckoutStore) ClearCart(ctx context.Context, userID int) (int64, error) {
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	m.clearCalls++
	deleted := int64(len(m.items))
	m.items = nil
	return deleted, nil
}

type mockMailer struct {
	// confirmErrs / alertErrs are consumed one per call; nil once exhausted.
	confirmErrs []error
	alertErrs   []error

	confirmCalls int
	alertCalls   int

	lastTo      string
	lastName    string
	lastOrderID string
	lastSummary string
	lastTotal   string
	lastForm    models.CheckoutForm
}

func (m *mockMailer) SendOrderConfirmation(to, name, orderID, itemSummary, total string) error {
	m.confirmCalls++
	m.lastTo, m.lastName, m.lastOrderID, m.lastSummary, m.lastTotal = to, name, orderID, itemSummary, total
	return popErr(&m.confirmErrs)
}

func (m *mockMailer) SendOrderAlert(orderID, itemSummary, total string, form models.CheckoutForm) error {
	m.alertCalls++
	m.lastForm = form
	return popErr(&m.alertErrs)
}

func popErr(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

// mockCartStore implements repositories.CartStore.
type mockCartStore struct {
	items    []models.CartItem
	addErr   error
	listErr  error
	delErr   error
	clearErr error

	addCalls  int
	lastLabel string
	lastPrice decimal.Decimal
}

func (m *mockCartStore) Add(ctx context.Context, userID int, productLabel string, unitPrice decimal.Decimal) (*models.CartItem, error) {
	m.addCalls++
	m.lastLabel = productLabel
	m.lastPrice = unitPrice
	if m.addErr != nil {
		return nil, m.addErr
	}
	item := models.CartItem{ID: len(m.items) + 1, UserID: userID, ProductLabel: productLabel, UnitPrice: unitPrice}
	m.items = append(m.items, item)
	return &item, nil
}

func (m *mockCartStore) ListByUser(ctx context.Context, userID int) ([]models.CartItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

func (m *mockCartStore) DeleteOne(ctx context.Context, userID, itemID int) error {
	if m.delErr != nil {
		return m.delErr
	}
	for i, item := range m.items {
		if item.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrCartItemNotFound
}

func (m *mockCartStore) Clear(ctx context.Context, userID int) (int64, error) {
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	deleted := int64(len(m.items))
	m.items = nil
	return deleted, nil
}

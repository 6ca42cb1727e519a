package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"storefront/models"

	"github.com/shopspring/decimal"
)

const (
	orderIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderIDLength   = 11
)

// BuildOrder aggregates a cart snapshot into an order: exact decimal total,
// flattened item summary and a fresh external token. It does not persist
// anything.
func BuildOrder(userID int, items []models.CartItem) *models.Order {
	return &models.Order{
		UserID:      userID,
		OrderID:     NewOrderID(),
		ItemSummary: ItemSummary(items),
		Total:       OrderTotal(items),
		Status:      "Paid",
		Items:       orderLines(items),
		CreatedAt:   time.Now(),
	}
}

// OrderTotal sums unit prices with decimal arithmetic; no float drift.
func OrderTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice)
	}
	return total
}

// ItemSummary groups line items by label, preserving the first-seen order of
// distinct labels, as "label xN" joined by ", ".
func ItemSummary(items []models.CartItem) string {
	counts := map[string]int{}
	labels := []string{}

	for _, item := range items {
		if _, seen := counts[item.ProductLabel]; !seen {
			labels = append(labels, item.ProductLabel)
		}
		counts[item.ProductLabel]++
	}

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%s x%d", label, counts[label]))
	}
	return strings.Join(parts, ", ")
}

// NewOrderID returns an unguessable external token: '#' plus 11 random
// alphanumerics. Uniqueness is enforced by the orders.order_id constraint;
// the checkout retries with a fresh token on collision.
func NewOrderID() string {
	var b strings.Builder
	b.WriteByte('#')
	for i := 0; i < orderIDLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderIDAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken.
			panic(fmt.Sprintf("order id generation: %v", err))
		}
		b.WriteByte(orderIDAlphabet[n.Int64()])
	}
	return b.String()
}

// orderLines condenses the cart snapshot into audit rows, one per distinct
// label+price pair, first-seen order.
func orderLines(items []models.CartItem) []models.OrderItem {
	type key struct {
		label string
		price string
	}

	index := map[key]int{}
	lines := []models.OrderItem{}

	for _, item := range items {
		k := key{item.ProductLabel, item.UnitPrice.StringFixed(2)}
		if at, seen := index[k]; seen {
			lines[at].Quantity++
			continue
		}
		index[k] = len(lines)
		lines = append(lines, models.OrderItem{
			ProductLabel: item.ProductLabel,
			UnitPrice:    item.UnitPrice,
			Quantity:     1,
		})
	}
	return lines
}

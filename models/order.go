package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable after checkout, except for Status. OrderID is the
// externally facing token ('#' plus 11 alphanumerics); the numeric ID never
// leaves the database layer.
type Order struct {
	ID          int             `json:"-"`
	UserID      int             `json:"user_id"`
	OrderID     string          `json:"order_id"`
	ItemSummary string          `json:"item_summary"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Items       []OrderItem     `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderItem records the exact lines an order was built from. The flattened
// ItemSummary stays the outward contract; these rows exist for auditing.
type OrderItem struct {
	ID           int             `json:"-"`
	OrderRef     int             `json:"-"`
	ProductLabel string          `json:"product_label"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

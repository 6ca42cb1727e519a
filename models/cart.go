package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	ProductLabel string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"price"`
	Status       string          `json:"status,omitempty"`
	AddedAt      time.Time       `json:"added_at"`
}

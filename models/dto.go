package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SettingsRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=150"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type AddCartRequest struct {
	Product string          `json:"product"`
	Price   decimal.Decimal `json:"price"`
}

type CartListResponse struct {
	Items []CartItem `json:"items"`
	Total string     `json:"total"`
}

type ValidateCheckoutRequest struct {
	FormType string `json:"form_type"`
	CheckoutForm
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	ItemSummary string `json:"item_summary"`
	Total       string `json:"total"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type FieldErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

package services

import (
	"context"
	"strings"

	"storefront/models"
	"storefront/repositories"

	"github.com/shopspring/decimal"
)

const maxProductLabelLen = 100

type CartService struct {
	cartRepo repositories.CartStore
}

func NewCartService(cartRepo repositories.CartStore) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// AddItem validates the submitted line before any write: the label must be
// present and bounded, the price a positive decimal.
func (s *CartService) AddItem(ctx context.Context, userID int, req models.AddCartRequest) (*models.CartItem, error) {
	label := strings.TrimSpace(req.Product)

	errs := FieldErrors{}
	if label == "" {
		errs["product"] = "Product is required"
	} else if len(label) > maxProductLabelLen {
		errs["product"] = "Product name too long"
	}
	if !req.Price.IsPositive() {
		errs["price"] = "Price must be greater than 0"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return s.cartRepo.Add(ctx, userID, label, req.Price.Round(2))
}

// List returns the cart most-recent-first with the running total rounded to
// two decimal places.
func (s *CartService) List(ctx context.Context, userID int) (*models.CartListResponse, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice)
	}

	return &models.CartListResponse{
		Items: items,
		Total: total.Round(2).StringFixed(2),
	}, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int) error {
	return s.cartRepo.DeleteOne(ctx, userID, itemID)
}

// Clear empties the cart; clearing an already empty cart reports zero
// deletions and succeeds.
func (s *CartService) Clear(ctx context.Context, userID int) (int64, error) {
	return s.cartRepo.Clear(ctx, userID)
}

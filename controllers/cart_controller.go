package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"storefront/models"
	"storefront/repositories"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

// CartManager is what the cart handlers need from the cart service.
type CartManager interface {
	AddItem(ctx context.Context, userID int, req models.AddCartRequest) (*models.CartItem, error)
	List(ctx context.Context, userID int) (*models.CartListResponse, error)
	RemoveItem(ctx context.Context, userID, itemID int) error
	Clear(ctx context.Context, userID int) (int64, error)
}

type CartController struct {
	cart CartManager
}

func NewCartController(cart CartManager) *CartController {
	return &CartController{cart: cart}
}

// AddToCart godoc
// @Summary Add item to cart
// @Description Add a product line (label + unit price) to the caller's cart
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartRequest true "Cart line"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.FieldErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price format"})
		return
	}

	item, err := ctrl.cart.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		if fieldErrs, ok := services.AsFieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, models.FieldErrorResponse{
				Success: false,
				Message: "Validation failed",
				Errors:  fieldErrs,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to cart"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product added to cart",
		"data":    item,
	})
}

// GetCart godoc
// @Summary List cart
// @Description Cart items most-recently-added first, plus the running total
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CartListResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	list, err := ctrl.cart.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// DeleteItem godoc
// @Summary Delete one cart item
// @Description Remove a single item owned by the caller
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [delete]
func (ctrl *CartController) DeleteItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid item ID"})
		return
	}

	if err := ctrl.cart.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted"})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Delete every item in the caller's cart; an empty cart clears to zero
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	deleted, err := ctrl.cart.Clear(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Cart cleared",
		"deleted_count": deleted,
	})
}

package controllers

import (
	"context"
	"errors"
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

// CheckoutRunner is what the checkout handler needs from the coordinator.
type CheckoutRunner interface {
	Checkout(ctx context.Context, userID int, form models.CheckoutForm) (*services.CheckoutResult, error)
}

type CheckoutController struct {
	checkout CheckoutRunner
}

func NewCheckoutController(checkout CheckoutRunner) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Checkout godoc
// @Summary Checkout
// @Description Validate contact/shipping input and atomically convert the cart into an order
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutForm true "Contact and shipping fields"
// @Success 201 {object} models.CheckoutResponse
// @Failure 400 {object} models.FieldErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	result, err := ctrl.checkout.Checkout(c.Request.Context(), userID, form)
	if err != nil {
		if fieldErrs, ok := services.AsFieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, models.FieldErrorResponse{
				Success: false,
				Message: "Please fix the errors in your form",
				Errors:  fieldErrs,
			})
			return
		}
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Order failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"data": models.CheckoutResponse{
			OrderID:     result.OrderID,
			ItemSummary: result.ItemSummary,
			Total:       result.Total,
		},
	})
}

// ValidateSection godoc
// @Summary Validate a checkout section
// @Description Run the contact or shipping validator without mutating anything
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ValidateCheckoutRequest true "Section and fields"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.FieldErrorResponse
// @Router /checkout/validate [post]
func (ctrl *CheckoutController) ValidateSection(c *gin.Context) {
	var req models.ValidateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	req.CheckoutForm.Trim()
	errs := map[string]string{}

	switch req.FormType {
	case "contact":
		req.CheckoutForm.ValidateContact(errs)
	case "shipping":
		req.CheckoutForm.ValidateShipping(errs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form type"})
		return
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.FieldErrorResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  errs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Valid"})
}

package controllers

import (
	"errors"
	"net/http"

	"storefront/repositories"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderRepo *repositories.OrderRepository
}

func NewOrderController(orderRepo *repositories.OrderRepository) *OrderController {
	return &OrderController{orderRepo: orderRepo}
}

// GetOrders godoc
// @Summary Order history
// @Description The caller's orders, most recent first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID := c.GetInt("user_id")

	orders, err := ctrl.orderRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Orders retrieved",
		"data":    orders,
	})
}

// GetOrderByToken godoc
// @Summary Order confirmation
// @Description Look up one order by its external token; owner-only
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param order_id path string true "External order token"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{order_id} [get]
func (ctrl *OrderController) GetOrderByToken(c *gin.Context) {
	userID := c.GetInt("user_id")
	token := c.Param("order_id")

	order, err := ctrl.orderRepo.FindByToken(c.Request.Context(), userID, token)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order retrieved",
		"data":    order,
	})
}

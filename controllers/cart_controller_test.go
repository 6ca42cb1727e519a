package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/models"
	"storefront/repositories"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects the auth middleware's user_id without a real token.
func asUser(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type mockCartManager struct {
	item    *models.CartItem
	list    *models.CartListResponse
	deleted int64
	err     error

	addCalls int
	lastReq  models.AddCartRequest
}

func (m *mockCartManager) AddItem(ctx context.Context, userID int, req models.AddCartRequest) (*models.CartItem, error) {
	m.addCalls++
	m.lastReq = req
	return m.item, m.err
}

func (m *mockCartManager) List(ctx context.Context, userID int) (*models.CartListResponse, error) {
	return m.list, m.err
}

func (m *mockCartManager) RemoveItem(ctx context.Context, userID, itemID int) error {
	return m.err
}

func (m *mockCartManager) Clear(ctx context.Context, userID int) (int64, error) {
	return m.deleted, m.err
}

func cartRouter(cart CartManager) *gin.Engine {
	router := gin.New()
	ctrl := NewCartController(cart)

	authed := router.Group("/", asUser(7))
	authed.POST("/cart", ctrl.AddToCart)
	authed.GET("/cart", ctrl.GetCart)
	authed.DELETE("/cart/:id", ctrl.DeleteItem)
	authed.DELETE("/cart", ctrl.ClearCart)
	return router
}

func TestAddToCart(t *testing.T) {
	cart := &mockCartManager{item: &models.CartItem{
		ID:           1,
		UserID:       7,
		ProductLabel: "Test Product",
		UnitPrice:    decimal.RequireFromString("99.99"),
	}}
	router := cartRouter(cart)

	rec := doJSON(t, router, http.MethodPost, "/cart", gin.H{"product": "Test Product", "price": "99.99"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, cart.addCalls)
	assert.Contains(t, rec.Body.String(), "Product added to cart")
}

func TestAddToCart_FieldErrors(t *testing.T) {
	cart := &mockCartManager{err: services.FieldErrors{"price": "Price must be greater than 0"}}
	router := cartRouter(cart)

	rec := doJSON(t, router, http.MethodPost, "/cart", gin.H{"product": "Test Product", "price": "-5.00"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.FieldErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Price must be greater than 0", resp.Errors["price"])
}

func TestAddToCart_MalformedBody(t *testing.T) {
	cart := &mockCartManager{}
	router := cartRouter(cart)

	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, cart.addCalls)
}

func TestGetCart(t *testing.T) {
	router := cartRouter(&mockCartManager{list: &models.CartListResponse{
		Items: []models.CartItem{{ID: 1, ProductLabel: "Test Product", UnitPrice: decimal.RequireFromString("25.50")}},
		Total: "25.50",
	}})

	rec := doJSON(t, router, http.MethodGet, "/cart", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.CartListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "25.50", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Test Product", resp.Items[0].ProductLabel)
}

func TestDeleteItem_NotFound(t *testing.T) {
	router := cartRouter(&mockCartManager{err: repositories.ErrCartItemNotFound})

	rec := doJSON(t, router, http.MethodDelete, "/cart/42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item not found")
}

func TestDeleteItem_InvalidID(t *testing.T) {
	router := cartRouter(&mockCartManager{})

	rec := doJSON(t, router, http.MethodDelete, "/cart/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid item ID")
}

func TestClearCart(t *testing.T) {
	router := cartRouter(&mockCartManager{deleted: 3})

	rec := doJSON(t, router, http.MethodDelete, "/cart", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp["deleted_count"])
}

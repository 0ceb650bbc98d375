package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/auth"
	"github.com/01moynul/storefront-api/internal/middleware"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/orders"
	"github.com/01moynul/storefront-api/internal/response"
	"github.com/01moynul/storefront-api/internal/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Unused interface methods panic through the nil embedded interface.
type fakeOrders struct {
	OrderService
	got    orders.PlaceOrderRequest
	err    error
	status models.OrderStatus
}

func (f *fakeOrders) PlaceOrder(_ context.Context, req orders.PlaceOrderRequest) (*orders.PlaceOrderResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &orders.PlaceOrderResult{
		Order: &models.Order{
			ID:            42,
			UserID:        req.UserID,
			Subtotal:      decimal.NewFromInt(25000),
			ShippingCost:  decimal.NewFromInt(2000),
			GrandTotal:    decimal.NewFromInt(27000),
			Status:        models.OrderPlaced,
			PaymentMethod: "cash",
		},
		Skipped: []int64{9},
	}, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ int64, raw string) (models.OrderStatus, error) {
	if f.err != nil {
		return "", f.err
	}
	return orders.ParseStatus(raw)
}

type fakeUsers struct {
	UserService
	asked int64
}

func (f *fakeUsers) GetProfile(_ context.Context, userID int64) (*users.Profile, error) {
	f.asked = userID
	return &users.Profile{User: &models.User{ID: userID}}, nil
}

type fakeAuth struct {
	AuthService
	login string
}

func (f *fakeAuth) Login(_ context.Context, login, _ string) (*auth.Session, error) {
	f.login = login
	return &auth.Session{Token: "t", User: &models.User{ID: 1}}, nil
}

// identity stands in for the JWT middleware.
func identity(userID int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}

func call(t *testing.T, h gin.HandlerFunc, mw gin.HandlerFunc, method, route, path string, body any) (int, response.Envelope) {
	t.Helper()
	r := gin.New()
	r.Handle(method, route, mw, h)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestPlaceOrder_LegacyFields(t *testing.T) {
	fo := &fakeOrders{}
	h := &Handlers{Orders: fo}

	code, env := call(t, h.PlaceOrder, identity(7, models.RoleCustomer), http.MethodPost, "/orders", "/orders", map[string]any{
		"userId":       7,
		"namaDepan":    "Budi",
		"namaBelakang": "Santoso",
		"no_telp":      "0812",
		"alamat":       "Jl. Merdeka 1",
		"ongkir":       2000,
		"items": []map[string]any{
			{"idProduk": 3, "qtyPesanan": 2, "hargaSatuan": 10000},
		},
	})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	req := fo.got
	assert.Equal(t, int64(7), req.UserID)
	assert.False(t, req.UseCart)
	require.Len(t, req.Items, 1)
	assert.Equal(t, int64(3), req.Items[0].ProductID)
	assert.Equal(t, 2, req.Items[0].Quantity)
	require.NotNil(t, req.Items[0].UnitPrice)
	assert.True(t, req.Items[0].UnitPrice.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, req.Recipient)
	assert.Equal(t, orders.Recipient{FirstName: "Budi", LastName: "Santoso", Phone: "0812", Address: "Jl. Merdeka 1"}, *req.Recipient)
	require.NotNil(t, req.ShippingCost)
	assert.True(t, req.ShippingCost.Equal(decimal.NewFromInt(2000)))

	data := env.Data.(map[string]any)
	assert.Equal(t, float64(42), data["order_id"])
	assert.Equal(t, float64(42), data["idPemesanan"])
	assert.Equal(t, float64(25000), data["totalBelanja"])
	assert.Equal(t, float64(2000), data["ongkir"])
	assert.Equal(t, float64(27000), data["grandTotal"])
	assert.Equal(t, "placed", data["status"])
	assert.Equal(t, []any{float64(9)}, data["skipped_products"])
}

func TestPlaceOrder_CartMode(t *testing.T) {
	fo := &fakeOrders{}
	h := &Handlers{Orders: fo}

	code, _ := call(t, h.PlaceOrder, identity(7, models.RoleCustomer), http.MethodPost, "/orders", "/orders", map[string]any{
		"shipping_address": "Jl. Sudirman 5",
		"shipping_cost":    1500,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, fo.got.UseCart)
	assert.Nil(t, fo.got.Recipient)
	assert.Equal(t, "Jl. Sudirman 5", fo.got.ShippingAddress)
}

func TestPlaceOrder_Identity(t *testing.T) {
	t.Run("customer cannot order for someone else", func(t *testing.T) {
		fo := &fakeOrders{}
		h := &Handlers{Orders: fo}
		code, env := call(t, h.PlaceOrder, identity(7, models.RoleCustomer), http.MethodPost, "/orders", "/orders", map[string]any{
			"userId":           8,
			"shipping_address": "x",
		})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.False(t, env.Success)
		assert.Zero(t, fo.got.UserID)
	})
	t.Run("admin acts on behalf of a customer", func(t *testing.T) {
		fo := &fakeOrders{}
		h := &Handlers{Orders: fo}
		code, _ := call(t, h.PlaceOrder, identity(1, models.RoleAdmin), http.MethodPost, "/orders", "/orders", map[string]any{
			"userId":           8,
			"shipping_address": "x",
		})
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, int64(8), fo.got.UserID)
	})
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	h := &Handlers{Orders: &fakeOrders{err: apperr.ErrEmptyCart}}
	code, env := call(t, h.PlaceOrder, identity(7, models.RoleCustomer), http.MethodPost, "/orders", "/orders", map[string]any{
		"shipping_address": "x",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "cart is empty", env.Message)
	assert.Empty(t, env.Error)
}

func TestUpdateOrderStatus(t *testing.T) {
	h := &Handlers{Orders: &fakeOrders{}}

	code, env := call(t, h.UpdateOrderStatus, identity(1, models.RoleAdmin), http.MethodPut, "/orders/:id", "/orders/5", map[string]any{"status": "dikirim"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"order_id": float64(5), "status": "shipped"}, env.Data)

	code, _ = call(t, h.UpdateOrderStatus, identity(1, models.RoleAdmin), http.MethodPut, "/orders/:id", "/orders/5", map[string]any{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, h.UpdateOrderStatus, identity(1, models.RoleAdmin), http.MethodPut, "/orders/:id", "/orders/abc", map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, h.UpdateOrderStatus, identity(1, models.RoleAdmin), http.MethodPut, "/orders/:id", "/orders/5", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetUser_SelfOrAdmin(t *testing.T) {
	fu := &fakeUsers{}
	h := &Handlers{Users: fu}

	code, _ := call(t, h.GetUser, identity(7, models.RoleCustomer), http.MethodGet, "/users/:id", "/users/7", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(7), fu.asked)

	code, _ = call(t, h.GetUser, identity(7, models.RoleCustomer), http.MethodGet, "/users/:id", "/users/8", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, h.GetUser, identity(1, models.RoleAdmin), http.MethodGet, "/users/:id", "/users/8", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(8), fu.asked)
}

func TestLogin(t *testing.T) {
	fa := &fakeAuth{}
	h := &Handlers{Auth: fa}
	none := func(c *gin.Context) { c.Next() }

	code, _ := call(t, h.Login, none, http.MethodPost, "/auth/login", "/auth/login", map[string]any{"email": "a@b.c", "password": "secret"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "a@b.c", fa.login)

	code, env := call(t, h.Login, none, http.MethodPost, "/auth/login", "/auth/login", map[string]any{"password": "secret"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username or email is required", env.Message)

	code, env = call(t, h.Login, none, http.MethodPost, "/auth/login", "/auth/login", map[string]any{"login": "a"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "Password is required")
}

type fakeCart struct {
	CartService
	calls int
}

func (f *fakeCart) UpdateQuantity(_ context.Context, _, _ int64, qty int) error {
	f.calls++
	if qty < 1 {
		return apperr.Validation("quantity must be at least 1")
	}
	return nil
}

func TestUpdateCartItem_QuantityRuleOwnedByService(t *testing.T) {
	fc := &fakeCart{}
	h := &Handlers{Cart: fc}

	for _, qty := range []int{0, -3} {
		code, env := call(t, h.UpdateCartItem, identity(7, models.RoleCustomer), http.MethodPut, "/cart/:itemId", "/cart/4", map[string]any{"quantity": qty})
		assert.Equal(t, http.StatusBadRequest, code, "quantity %d", qty)
		assert.Equal(t, "quantity must be at least 1", env.Message, "quantity %d", qty)
	}
	assert.Equal(t, 2, fc.calls)

	code, _ := call(t, h.UpdateCartItem, identity(7, models.RoleCustomer), http.MethodPut, "/cart/:itemId", "/cart/4", map[string]any{"quantity": 3})
	assert.Equal(t, http.StatusOK, code)
}

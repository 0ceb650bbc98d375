// Package handlers contains the gin endpoints of the storefront API.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/auth"
	"github.com/01moynul/storefront-api/internal/cart"
	"github.com/01moynul/storefront-api/internal/catalog"
	"github.com/01moynul/storefront-api/internal/middleware"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/orders"
	"github.com/01moynul/storefront-api/internal/response"
	"github.com/01moynul/storefront-api/internal/users"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*auth.Session, error)
	Login(ctx context.Context, login, password string) (*auth.Session, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, in catalog.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, productID int64, kind string, qty int, note string) (int, error)
}

type CartService interface {
	Get(ctx context.Context, userID int64) (*cart.Summary, error)
	Add(ctx context.Context, userID, productID int64, qty int) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) error
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type OrderService interface {
	PlaceOrder(ctx context.Context, req orders.PlaceOrderRequest) (*orders.PlaceOrderResult, error)
	ListOrders(ctx context.Context, userID int64) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.OrderSummary, error)
	GetOrder(ctx context.Context, v orders.Viewer, id int64) (*orders.OrderDetail, error)
	UpdateStatus(ctx context.Context, id int64, raw string) (models.OrderStatus, error)
	Cancel(ctx context.Context, v orders.Viewer, id int64) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*users.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, in users.ProfileInput) (*models.ShippingProfile, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	ListAddresses(ctx context.Context, userID int64) ([]models.Address, error)
	AddAddress(ctx context.Context, userID int64, in users.AddressInput) (*models.Address, error)
	UpdateAddress(ctx context.Context, userID, id int64, in users.AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, id int64) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// StatsSource reports the admin dashboard counters.
type StatsSource interface {
	Stats(ctx context.Context, lowStockThreshold int) (*models.OrderStats, error)
}

var (
	_ AuthService    = (*auth.Service)(nil)
	_ CatalogService = (*catalog.Service)(nil)
	_ CartService    = (*cart.Service)(nil)
	_ OrderService   = (*orders.Service)(nil)
	_ UserService    = (*users.Service)(nil)
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Auth    AuthService
	Catalog CatalogService
	Cart    CartService
	Orders  OrderService
	Users   UserService
	Stats   StatsSource

	// LowStockThreshold is the stock level at or below which a product
	// counts as low stock on the dashboard.
	LowStockThreshold int
}

// paramID parses a positive integer path parameter. On failure it writes a
// 400 envelope and returns false.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

func viewer(c *gin.Context) orders.Viewer {
	return orders.Viewer{UserID: middleware.UserID(c), IsAdmin: middleware.IsAdmin(c)}
}

// targetUser resolves the :id path parameter of /users routes. Customers
// may only address themselves.
func targetUser(c *gin.Context) (int64, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, false
	}
	if id != middleware.UserID(c) && !middleware.IsAdmin(c) {
		response.Fail(c, http.StatusForbidden, "You can only access your own account", nil)
		return 0, false
	}
	return id, true
}

// money renders a decimal amount as a JSON number.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

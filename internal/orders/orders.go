// Package orders implements order placement and the order status lifecycle.
package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/models"
)

// Catalog resolves the current price of a purchasable product.
type Catalog interface {
	// PriceOf returns found=false when the product does not exist or is inactive.
	PriceOf(ctx context.Context, productID int64) (price decimal.Decimal, found bool, err error)
}

// Cart is the part of the cart store the workflow touches.
type Cart interface {
	Items(ctx context.Context, userID int64, forUpdate bool) ([]models.CartItem, error)
	Clear(ctx context.Context, userID int64) error
}

// Repository persists orders and their items.
type Repository interface {
	Create(ctx context.Context, o *models.Order) error
	AddItem(ctx context.Context, item *models.OrderItem) error
	Get(ctx context.Context, id int64) (*models.Order, error)
	Items(ctx context.Context, orderID int64) ([]models.OrderItemDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.OrderSummary, error)
	SetStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

// Profiles upserts the primary shipping profile.
type Profiles interface {
	Upsert(ctx context.Context, p *models.ShippingProfile) error
}

// Repos is the set of stores bound to one transaction.
type Repos struct {
	Catalog  Catalog
	Cart     Cart
	Orders   Repository
	Profiles Profiles
}

// UnitOfWork runs fn inside a single database transaction. Any error
// returned by fn rolls back every write made through r.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

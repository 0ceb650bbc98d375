package orders

import (
	"context"
	"maps"
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

// memStore is an in-memory stand-in for the MySQL stores. Do snapshots the
// state and restores it when fn fails, like a rolled back transaction.
type memStore struct {
	prices   map[int64]decimal.Decimal
	cart     map[int64][]models.CartItem
	orders   []models.Order
	items    []models.OrderItem
	profiles map[int64]models.ShippingProfile

	failAddItem bool
	calls       []string
}

func newMemStore() *memStore {
	return &memStore{
		prices:   map[int64]decimal.Decimal{},
		cart:     map[int64][]models.CartItem{},
		profiles: map[int64]models.ShippingProfile{},
	}
}

// memCart and memOrders split the method sets that share the Items name.
type (
	memCart   struct{ *memStore }
	memOrders struct{ *memStore }
)

var (
	_ UnitOfWork = (*memStore)(nil)
	_ Catalog    = (*memStore)(nil)
	_ Profiles   = (*memStore)(nil)
	_ Cart       = memCart{}
	_ Repository = memOrders{}
)

func (m *memStore) Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	cart := maps.Clone(m.cart)
	orders := slices.Clone(m.orders)
	items := slices.Clone(m.items)
	profiles := maps.Clone(m.profiles)

	if err := fn(ctx, Repos{Catalog: m, Cart: memCart{m}, Orders: memOrders{m}, Profiles: m}); err != nil {
		m.cart, m.orders, m.items, m.profiles = cart, orders, items, profiles
		return err
	}
	return nil
}

func (m *memStore) PriceOf(_ context.Context, id int64) (decimal.Decimal, bool, error) {
	p, ok := m.prices[id]
	return p, ok, nil
}

func (m memCart) Items(_ context.Context, userID int64, forUpdate bool) ([]models.CartItem, error) {
	if forUpdate {
		m.calls = append(m.calls, "lock cart")
	}
	return slices.Clone(m.cart[userID]), nil
}

func (m memCart) Clear(_ context.Context, userID int64) error {
	m.calls = append(m.calls, "clear cart")
	delete(m.cart, userID)
	return nil
}

func (m *memStore) Upsert(_ context.Context, p *models.ShippingProfile) error {
	m.calls = append(m.calls, "upsert profile")
	m.profiles[p.UserID] = *p
	return nil
}

func (m memOrders) Create(_ context.Context, o *models.Order) error {
	m.calls = append(m.calls, "create order")
	o.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, *o)
	return nil
}

func (m memOrders) AddItem(_ context.Context, item *models.OrderItem) error {
	m.calls = append(m.calls, "add item")
	if m.failAddItem {
		return apperr.Persistence(errors.New("connection reset"), "create order item")
	}
	item.ID = int64(len(m.items) + 1)
	m.items = append(m.items, *item)
	return nil
}

func (m memOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, apperr.NotFound("order not found")
}

func (m memOrders) Items(_ context.Context, orderID int64) ([]models.OrderItemDetail, error) {
	var out []models.OrderItemDetail
	for _, it := range m.itemsOf(orderID) {
		out = append(out, models.OrderItemDetail{OrderItem: it})
	}
	return out, nil
}

func (m *memStore) itemsOf(orderID int64) []models.OrderItem {
	var out []models.OrderItem
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (m memOrders) ListByUser(_ context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m memOrders) ListAll(context.Context) ([]models.OrderSummary, error) {
	out := make([]models.OrderSummary, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, models.OrderSummary{Order: o})
	}
	return out, nil
}

func (m memOrders) SetStatus(_ context.Context, id int64, status models.OrderStatus) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return apperr.NotFound("order not found")
}

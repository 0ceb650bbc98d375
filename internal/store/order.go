package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/orders"
)

const orderColumns = `o.id, o.user_id, o.subtotal, o.shipping_cost, o.grand_total, o.status, o.payment_method,
	o.shipping_address, o.recipient_name, o.recipient_phone, o.created_at, o.updated_at`

type OrderStore struct {
	db sqlx.ExtContext
}

var _ orders.Repository = (*OrderStore)(nil)

func NewOrderStore(db sqlx.ExtContext) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts the order header and sets its ID.
func (s *OrderStore) Create(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO orders (user_id, subtotal, shipping_cost, grand_total, status, payment_method,
			shipping_address, recipient_name, recipient_phone)
		VALUES (:user_id, :subtotal, :shipping_cost, :grand_total, :status, :payment_method,
			:shipping_address, :recipient_name, :recipient_phone)`
	res, err := sqlx.NamedExecContext(ctx, s.db, query, o)
	if err != nil {
		return apperr.Persistence(err, "create order")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence(err, "read order id")
	}
	o.ID = id
	return nil
}

// AddItem inserts one order line with its captured unit price.
func (s *OrderStore) AddItem(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES (:order_id, :product_id, :quantity, :unit_price, :subtotal)`
	res, err := sqlx.NamedExecContext(ctx, s.db, query, item)
	if err != nil {
		return apperr.Persistence(err, "create order item")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence(err, "read order item id")
	}
	item.ID = id
	return nil
}

func (s *OrderStore) Get(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := sqlx.GetContext(ctx, s.db, &o, `SELECT `+orderColumns+` FROM orders o WHERE o.id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Persistence(err, "get order")
	}
	return &o, nil
}

// Items returns the lines of an order. Products that were removed from
// the catalog still show their captured price with an empty name.
func (s *OrderStore) Items(ctx context.Context, orderID int64) ([]models.OrderItemDetail, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.subtotal,
			COALESCE(p.name, '') AS product_name
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id`
	items := []models.OrderItemDetail{}
	if err := sqlx.SelectContext(ctx, s.db, &items, query, orderID); err != nil {
		return nil, apperr.Persistence(err, "list order items")
	}
	return items, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	list := []models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = ? ORDER BY o.created_at DESC, o.id DESC`
	if err := sqlx.SelectContext(ctx, s.db, &list, query, userID); err != nil {
		return nil, apperr.Persistence(err, "list orders")
	}
	return list, nil
}

// ListAll returns every order with its customer, for the admin console.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.OrderSummary, error) {
	query := `
		SELECT ` + orderColumns + `,
			COALESCE(u.username, '') AS username, COALESCE(u.email, '') AS email,
			(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id) AS item_count
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC, o.id DESC`
	list := []models.OrderSummary{}
	if err := sqlx.SelectContext(ctx, s.db, &list, query); err != nil {
		return nil, apperr.Persistence(err, "list all orders")
	}
	return list, nil
}

// SetStatus overwrites the status of an order.
func (s *OrderStore) SetStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`, string(status), id)
	if err != nil {
		return apperr.Persistence(err, "update order status")
	}
	return requireAffected(res, "order")
}

// Stats aggregates the admin dashboard counters.
func (s *OrderStore) Stats(ctx context.Context, lowStockThreshold int) (*models.OrderStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COUNT(*) FROM orders WHERE status IN ('placed', 'processing')) AS pending_orders,
			(SELECT COALESCE(SUM(grand_total), 0) FROM orders WHERE status <> 'cancelled') AS revenue,
			(SELECT COUNT(*) FROM products WHERE status = 'active') AS total_products,
			(SELECT COUNT(*) FROM products WHERE status = 'active' AND stock <= ?) AS low_stock,
			(SELECT COUNT(*) FROM users WHERE role = 'customer') AS total_customers`
	var st models.OrderStats
	if err := sqlx.GetContext(ctx, s.db, &st, query, lowStockThreshold); err != nil {
		return nil, apperr.Persistence(err, "dashboard stats")
	}
	return &st, nil
}

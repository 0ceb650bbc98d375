package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPlaced     OrderStatus = "placed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order is the model for the 'orders' table.
// GrandTotal is computed once at creation and never recomputed.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost" db:"shipping_cost"`
	GrandTotal      decimal.Decimal `json:"grandTotal" db:"grand_total"`
	Status          OrderStatus     `json:"status" db:"status"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	ShippingAddress string          `json:"shippingAddress" db:"shipping_address"`
	RecipientName   *string         `json:"recipientName,omitempty" db:"recipient_name"`
	RecipientPhone  *string         `json:"recipientPhone,omitempty" db:"recipient_phone"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the model for the 'order_items' table.
// UnitPrice is the price captured at order time.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// OrderItemDetail extends OrderItem with the product name.
type OrderItemDetail struct {
	OrderItem
	ProductName string `json:"productName" db:"product_name"`
}

// OrderSummary is an order row joined with the customer, used by the admin console.
type OrderSummary struct {
	Order
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	ItemCount int    `json:"itemCount" db:"item_count"`
}

// OrderStats backs the admin dashboard.
type OrderStats struct {
	TotalOrders    int             `json:"totalOrders" db:"total_orders"`
	PendingOrders  int             `json:"pendingOrders" db:"pending_orders"`
	Revenue        decimal.Decimal `json:"revenue" db:"revenue"`
	TotalProducts  int             `json:"totalProducts" db:"total_products"`
	LowStock       int             `json:"lowStock" db:"low_stock"`
	TotalCustomers int             `json:"totalCustomers" db:"total_customers"`
}

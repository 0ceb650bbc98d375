package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses. Inactive products stay in the table so order history
// can still join their names.
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product is the model for the 'products' table.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Description *string         `json:"description,omitempty" db:"description"`
	Category    *string         `json:"category,omitempty" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Status      string          `json:"status" db:"status"`
	ImagePath   *string         `json:"imagePath,omitempty" db:"image_path"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Stock movement directions.
const (
	StockIn  = "in"
	StockOut = "out"
)

// StockMovement is the model for the 'stock_movements' table, an audit
// trail of manual stock adjustments.
type StockMovement struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Type      string    `json:"type" db:"type"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Note      *string   `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

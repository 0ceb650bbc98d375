package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/orders"
)

// CartStore is the cart accessor. Row-targeted mutations are scoped to the
// owning user and report NotFound when no row matched.
type CartStore struct {
	db sqlx.ExtContext
}

var _ orders.Cart = (*CartStore)(nil)

func NewCartStore(db sqlx.ExtContext) *CartStore {
	return &CartStore{db: db}
}

// Lines returns the user's cart joined with current product name and price.
func (s *CartStore) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		ORDER BY ci.id`
	lines := []models.CartLine{}
	if err := sqlx.SelectContext(ctx, s.db, &lines, query, userID); err != nil {
		return nil, apperr.Persistence(err, "list cart")
	}
	for i := range lines {
		lines[i].LineTotal = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
	}
	return lines, nil
}

// Items returns the raw cart rows. With forUpdate the rows stay locked until
// the surrounding transaction ends.
func (s *CartStore) Items(ctx context.Context, userID int64, forUpdate bool) ([]models.CartItem, error) {
	query := `SELECT id, user_id, product_id, quantity, created_at, updated_at FROM cart_items WHERE user_id = ? ORDER BY id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	items := []models.CartItem{}
	if err := sqlx.SelectContext(ctx, s.db, &items, query, userID); err != nil {
		return nil, apperr.Persistence(err, "read cart items")
	}
	return items, nil
}

// AddOrMerge inserts a cart row or adds qty to the existing row for the
// same (user, product) pair.
func (s *CartStore) AddOrMerge(ctx context.Context, userID, productID int64, qty int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = NOW()`,
		userID, productID, qty)
	if err != nil {
		return apperr.Persistence(err, "add to cart")
	}
	return nil
}

func (s *CartStore) UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ?, updated_at = NOW() WHERE id = ? AND user_id = ?`,
		qty, itemID, userID)
	if err != nil {
		return apperr.Persistence(err, "update cart item")
	}
	return requireAffected(res, "cart item")
}

func (s *CartStore) Remove(ctx context.Context, userID, itemID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return apperr.Persistence(err, "remove cart item")
	}
	return requireAffected(res, "cart item")
}

// Clear empties the cart. Clearing an empty cart is not an error.
func (s *CartStore) Clear(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return apperr.Persistence(err, "clear cart")
	}
	return nil
}

// Package cart implements the per-user shopping cart.
package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

// Repository is the cart accessor.
type Repository interface {
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)
	AddOrMerge(ctx context.Context, userID, productID int64, qty int) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) error
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

// Products checks that a product can be added to a cart.
type Products interface {
	GetActive(ctx context.Context, id int64) (*models.Product, error)
}

// Summary is the cart view returned to clients.
type Summary struct {
	Items []models.CartLine `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

type Service struct {
	repo     Repository
	products Products
}

func NewService(repo Repository, products Products) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the cart with its total and item count.
func (s *Service) Get(ctx context.Context, userID int64) (*Summary, error) {
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Items: lines, Total: decimal.Zero}
	for _, l := range lines {
		sum.Total = sum.Total.Add(l.LineTotal)
		sum.Count += l.Quantity
	}
	sum.Total = sum.Total.Round(2)
	return sum, nil
}

// Add puts qty of a product in the cart, merging with an existing line.
func (s *Service) Add(ctx context.Context, userID, productID int64, qty int) error {
	if productID <= 0 {
		return apperr.Validation("product id is required")
	}
	if qty < 1 {
		return apperr.Validation("quantity must be at least 1")
	}
	if _, err := s.products.GetActive(ctx, productID); err != nil {
		return err
	}
	return s.repo.AddOrMerge(ctx, userID, productID, qty)
}

// UpdateQuantity sets the quantity of a cart line. Quantities below one are
// rejected without touching the store.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) error {
	if qty < 1 {
		return apperr.Validation("quantity must be at least 1")
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, qty)
}

func (s *Service) Remove(ctx context.Context, userID, itemID int64) error {
	return s.repo.Remove(ctx, userID, itemID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}

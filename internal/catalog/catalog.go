// Package catalog manages products and their stock.
package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

// Repository is the product store.
type Repository interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	GetActive(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Deactivate(ctx context.Context, id int64) error
}

// StockAdjuster applies a stock movement and returns the new level.
type StockAdjuster interface {
	Adjust(ctx context.Context, m *models.StockMovement) (int, error)
}

// ProductInput is the editable part of a product.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Status      string
	ImagePath   string
}

type Service struct {
	repo  Repository
	stock StockAdjuster
}

func NewService(repo Repository, stock StockAdjuster) *Service {
	return &Service{repo: repo, stock: stock}
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListAll(ctx)
}

// Get returns an active product.
func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetActive(ctx, id)
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, apperr.Validation("stock must not be negative")
	}
	p := &models.Product{Stock: in.Stock}
	apply(p, in)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	zctx.From(ctx).Info("Product created", zap.Int64("product_id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// Update rewrites the editable fields of a product. Stock is left alone.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p, in)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete hides a product from the catalog. Existing orders keep it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

// AdjustStock records an incoming or outgoing stock movement. The legacy
// names "masuk" and "keluar" are accepted.
func (s *Service) AdjustStock(ctx context.Context, productID int64, kind string, qty int, note string) (int, error) {
	if productID <= 0 {
		return 0, apperr.Validation("product id is required")
	}
	if qty < 1 {
		return 0, apperr.Validation("quantity must be at least 1")
	}

	var t string
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "in", "masuk":
		t = models.StockIn
	case "out", "keluar":
		t = models.StockOut
	default:
		return 0, apperr.Validationf("stock movement type must be in or out, got %q", kind)
	}

	m := &models.StockMovement{ProductID: productID, Type: t, Quantity: qty}
	if note = strings.TrimSpace(note); note != "" {
		m.Note = &note
	}
	stock, err := s.stock.Adjust(ctx, m)
	if err != nil {
		return 0, err
	}
	zctx.From(ctx).Info("Stock adjusted",
		zap.Int64("product_id", productID),
		zap.String("type", t),
		zap.Int("quantity", qty),
		zap.Int("stock", stock),
	)
	return stock, nil
}

func validate(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.Validation("product name is required")
	}
	if !in.Price.IsPositive() {
		return apperr.Validation("price must be greater than zero")
	}
	switch in.Status {
	case "":
		in.Status = models.ProductActive
	case models.ProductActive, models.ProductInactive:
	default:
		return apperr.Validationf("invalid product status %q", in.Status)
	}
	return nil
}

func apply(p *models.Product, in ProductInput) {
	p.Name = in.Name
	p.Slug = slug.Make(in.Name)
	p.Description = optional(in.Description)
	p.Category = optional(in.Category)
	p.Price = in.Price.Round(2)
	p.Status = in.Status
	p.ImagePath = optional(in.ImagePath)
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

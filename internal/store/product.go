package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/orders"
)

const productColumns = `id, name, slug, description, category, price, stock, status, image_path, created_at, updated_at`

// ProductStore is the catalog reader and the admin product writer.
type ProductStore struct {
	db sqlx.ExtContext
}

var _ orders.Catalog = (*ProductStore)(nil)

func NewProductStore(db sqlx.ExtContext) *ProductStore {
	return &ProductStore{db: db}
}

// ListActive returns the purchasable products, newest first.
func (s *ProductStore) ListActive(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE status = 'active' ORDER BY id DESC`
	if err := sqlx.SelectContext(ctx, s.db, &products, query); err != nil {
		return nil, apperr.Persistence(err, "list products")
	}
	return products, nil
}

// ListAll returns every product regardless of status.
func (s *ProductStore) ListAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id DESC`
	if err := sqlx.SelectContext(ctx, s.db, &products, query); err != nil {
		return nil, apperr.Persistence(err, "list products")
	}
	return products, nil
}

func (s *ProductStore) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

// GetActive is Get restricted to active products.
func (s *ProductStore) GetActive(ctx context.Context, id int64) (*models.Product, error) {
	return s.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = ? AND status = 'active'`, id)
}

func (s *ProductStore) get(ctx context.Context, query string, id int64) (*models.Product, error) {
	var p models.Product
	if err := sqlx.GetContext(ctx, s.db, &p, query, id); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Persistence(err, "get product")
	}
	return &p, nil
}

func (s *ProductStore) PriceOf(ctx context.Context, productID int64) (decimal.Decimal, bool, error) {
	var price decimal.Decimal
	err := sqlx.GetContext(ctx, s.db, &price, `SELECT price FROM products WHERE id = ? AND status = 'active'`, productID)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, apperr.Persistence(err, "get product price")
	}
	return price, true, nil
}

// Create inserts p and sets its ID.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, slug, description, category, price, stock, status, image_path)
		VALUES (:name, :slug, :description, :category, :price, :stock, :status, :image_path)`
	res, err := sqlx.NamedExecContext(ctx, s.db, query, p)
	if err != nil {
		return apperr.Persistence(err, "create product")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence(err, "read product id")
	}
	p.ID = id
	return nil
}

// Update overwrites the editable fields of p. Stock is only changed
// through stock movements.
func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = :name, slug = :slug, description = :description, category = :category,
			price = :price, status = :status, image_path = :image_path, updated_at = NOW()
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, s.db, query, p)
	if err != nil {
		return apperr.Persistence(err, "update product")
	}
	return requireAffected(res, "product")
}

// Deactivate soft-deletes a product. Order items keep referencing it.
func (s *ProductStore) Deactivate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE products SET status = 'inactive', updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return apperr.Persistence(err, "deactivate product")
	}
	return requireAffected(res, "product")
}

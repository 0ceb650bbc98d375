package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/database"
	"github.com/01moynul/storefront-api/internal/models"
)

// StockStore records manual stock adjustments.
type StockStore struct {
	db *sqlx.DB
}

func NewStockStore(db *sqlx.DB) *StockStore {
	return &StockStore{db: db}
}

// Adjust applies m to the product stock and appends it to the movement log
// in one transaction. It returns the resulting stock level.
func (s *StockStore) Adjust(ctx context.Context, m *models.StockMovement) (int, error) {
	var stock int
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		// 1. Lock the product row.
		err := tx.GetContext(ctx, &stock, `SELECT stock FROM products WHERE id = ? FOR UPDATE`, m.ProductID)
		if err != nil {
			if isNoRows(err) {
				return apperr.NotFound("product not found")
			}
			return apperr.Persistence(err, "lock product")
		}

		// 2. Compute the new level.
		switch m.Type {
		case models.StockIn:
			stock += m.Quantity
		case models.StockOut:
			if stock < m.Quantity {
				return apperr.Conflict("insufficient stock")
			}
			stock -= m.Quantity
		default:
			return apperr.Validationf("unknown stock movement type %q", m.Type)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE products SET stock = ?, updated_at = NOW() WHERE id = ?`, stock, m.ProductID); err != nil {
			return apperr.Persistence(err, "update stock")
		}

		// 3. Record the movement.
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO stock_movements (product_id, type, quantity, note)
			VALUES (:product_id, :type, :quantity, :note)`, m)
		if err != nil {
			return apperr.Persistence(err, "record stock movement")
		}
		m.ID, err = res.LastInsertId()
		if err != nil {
			return apperr.Persistence(err, "read movement id")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stock, nil
}

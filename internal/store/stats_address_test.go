package store

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

func TestOrderStore_Stats(t *testing.T) {
	dbx, mock := newMock(t)
	mock.ExpectQuery(`SELECT\s+\(SELECT COUNT\(\*\) FROM orders\)`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_orders", "pending_orders", "revenue", "total_products", "low_stock", "total_customers",
		}).AddRow(12, 3, "125000.00", 40, 2, 9))

	st, err := NewOrderStore(dbx).Stats(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 12, st.TotalOrders)
	assert.Equal(t, 3, st.PendingOrders)
	assert.True(t, st.Revenue.Equal(decimal.NewFromInt(125000)))
	assert.Equal(t, 40, st.TotalProducts)
	assert.Equal(t, 2, st.LowStock)
	assert.Equal(t, 9, st.TotalCustomers)
}

func TestAddressStore_CreatePrimary(t *testing.T) {
	dbx, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE addresses SET is_primary = FALSE WHERE user_id = \?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO addresses`).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	a := &models.Address{UserID: 7, Label: "home", RecipientName: "Budi", Phone: "0812", Address: "Jl. Merdeka 1", IsPrimary: true}
	require.NoError(t, NewAddressStore(dbx).Create(context.Background(), a))
	assert.Equal(t, int64(5), a.ID)
}

func TestAddressStore_Delete_NotFound(t *testing.T) {
	dbx, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM addresses WHERE id = \? AND user_id = \?`).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewAddressStore(dbx).Delete(context.Background(), 7, 3)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderStore_Items_ReadsCapturedPrices(t *testing.T) {
	// Lines must come from the order_items snapshot, never the live catalog price.
	matcher := sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		if strings.Contains(actual, "p.price") {
			return errors.Errorf("order lines read the live product price: %s", actual)
		}
		return sqlmock.QueryMatcherRegexp.Match(expected, actual)
	})
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	dbx := sqlx.NewDb(raw, "mysql")

	mock.ExpectQuery(`oi\.unit_price, oi\.subtotal`).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "quantity", "unit_price", "subtotal", "product_name",
		}).AddRow(1, 100, 1, 2, "10000.00", "20000.00", "Kopi Arabika"))

	items, err := NewOrderStore(dbx).Items(context.Background(), 100)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(10000)))
	assert.True(t, items[0].Subtotal.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, "Kopi Arabika", items[0].ProductName)
}

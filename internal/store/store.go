// Package store holds the MySQL repositories. Stores built on
// sqlx.ExtContext run unchanged on the pool or inside a transaction.
package store

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/database"
	"github.com/01moynul/storefront-api/internal/orders"
)

// UnitOfWork binds the order workflow stores to one transaction.
type UnitOfWork struct {
	db *sqlx.DB
}

var _ orders.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r orders.Repos) error) error {
	err := database.WithTx(ctx, u.db, func(tx *sqlx.Tx) error {
		return fn(ctx, orders.Repos{
			Catalog:  NewProductStore(tx),
			Cart:     NewCartStore(tx),
			Orders:   NewOrderStore(tx),
			Profiles: NewProfileStore(tx),
		})
	})
	if err != nil && apperr.KindOf(err) == apperr.KindInternal {
		return apperr.Persistence(err, "transaction failed")
	}
	return err
}

// requireAffected maps a zero-row mutation to NotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Persistence(err, "read affected rows")
	}
	if n == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/database"
	"github.com/01moynul/storefront-api/internal/models"
)

// AddressStore persists the saved addresses of a user.
type AddressStore struct {
	db *sqlx.DB
}

func NewAddressStore(db *sqlx.DB) *AddressStore {
	return &AddressStore{db: db}
}

func (s *AddressStore) List(ctx context.Context, userID int64) ([]models.Address, error) {
	list := []models.Address{}
	query := `
		SELECT id, user_id, label, recipient_name, phone, address, is_primary, created_at
		FROM addresses WHERE user_id = ?
		ORDER BY is_primary DESC, id`
	if err := s.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, apperr.Persistence(err, "list addresses")
	}
	return list, nil
}

// Create inserts a and sets its ID. A primary address demotes the others.
func (s *AddressStore) Create(ctx context.Context, a *models.Address) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if a.IsPrimary {
			if err := clearPrimary(ctx, tx, a.UserID); err != nil {
				return err
			}
		}
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO addresses (user_id, label, recipient_name, phone, address, is_primary)
			VALUES (:user_id, :label, :recipient_name, :phone, :address, :is_primary)`, a)
		if err != nil {
			return apperr.Persistence(err, "create address")
		}
		a.ID, err = res.LastInsertId()
		if err != nil {
			return apperr.Persistence(err, "read address id")
		}
		return nil
	})
}

func (s *AddressStore) Update(ctx context.Context, a *models.Address) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if a.IsPrimary {
			if err := clearPrimary(ctx, tx, a.UserID); err != nil {
				return err
			}
		}
		res, err := tx.NamedExecContext(ctx, `
			UPDATE addresses
			SET label = :label, recipient_name = :recipient_name, phone = :phone,
				address = :address, is_primary = :is_primary
			WHERE id = :id AND user_id = :user_id`, a)
		if err != nil {
			return apperr.Persistence(err, "update address")
		}
		return requireAffected(res, "address")
	})
}

func (s *AddressStore) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return apperr.Persistence(err, "delete address")
	}
	return requireAffected(res, "address")
}

func clearPrimary(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE addresses SET is_primary = FALSE WHERE user_id = ?`, userID); err != nil {
		return apperr.Persistence(err, "clear primary address")
	}
	return nil
}

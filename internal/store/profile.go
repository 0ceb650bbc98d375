package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
	"github.com/01moynul/storefront-api/internal/orders"
)

// ProfileStore persists the single primary shipping profile of a user.
type ProfileStore struct {
	db sqlx.ExtContext
}

var _ orders.Profiles = (*ProfileStore)(nil)

func NewProfileStore(db sqlx.ExtContext) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Get(ctx context.Context, userID int64) (*models.ShippingProfile, error) {
	var p models.ShippingProfile
	query := `SELECT id, user_id, first_name, last_name, phone, address, updated_at FROM customer_profiles WHERE user_id = ?`
	if err := sqlx.GetContext(ctx, s.db, &p, query, userID); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, apperr.Persistence(err, "get profile")
	}
	return &p, nil
}

func (s *ProfileStore) Exists(ctx context.Context, userID int64) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, `SELECT COUNT(*) FROM customer_profiles WHERE user_id = ?`, userID); err != nil {
		return false, apperr.Persistence(err, "check profile")
	}
	return n > 0, nil
}

func (s *ProfileStore) Insert(ctx context.Context, p *models.ShippingProfile) error {
	res, err := sqlx.NamedExecContext(ctx, s.db, `
		INSERT INTO customer_profiles (user_id, first_name, last_name, phone, address)
		VALUES (:user_id, :first_name, :last_name, :phone, :address)`, p)
	if err != nil {
		return apperr.Persistence(err, "insert profile")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence(err, "read profile id")
	}
	p.ID = id
	return nil
}

func (s *ProfileStore) Update(ctx context.Context, p *models.ShippingProfile) error {
	_, err := sqlx.NamedExecContext(ctx, s.db, `
		UPDATE customer_profiles
		SET first_name = :first_name, last_name = :last_name, phone = :phone, address = :address
		WHERE user_id = :user_id`, p)
	if err != nil {
		return apperr.Persistence(err, "update profile")
	}
	return nil
}

// Upsert updates the existing profile or inserts a new one. The existence
// check is explicit so the outcome never depends on affected-row counts.
func (s *ProfileStore) Upsert(ctx context.Context, p *models.ShippingProfile) error {
	exists, err := s.Exists(ctx, p.UserID)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, p)
	}
	return s.Insert(ctx, p)
}

package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/database"
	"github.com/01moynul/storefront-api/internal/models"
)

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts u and sets its ID. A taken username or email is a Conflict.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES (:username, :email, :password_hash, :role)`, u)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return apperr.Conflict("username or email already registered")
		}
		return apperr.Persistence(err, "create user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperr.Persistence(err, "read user id")
	}
	u.ID = id
	return nil
}

// FindByLogin looks a user up by username or email.
func (s *UserStore) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.get(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? LIMIT 1`, login, login)
}

func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *UserStore) get(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, query, args...); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Persistence(err, "get user")
	}
	return &u, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`, hash, id)
	if err != nil {
		return apperr.Persistence(err, "update password")
	}
	return requireAffected(res, "user")
}

// ListCustomers returns customer accounts joined with their primary profile.
func (s *UserStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at, u.updated_at,
			cp.first_name, cp.last_name, cp.phone, cp.address,
			(SELECT COUNT(*) FROM orders o WHERE o.user_id = u.id) AS order_count
		FROM users u
		LEFT JOIN customer_profiles cp ON cp.user_id = u.id
		WHERE u.role = 'customer'
		ORDER BY u.id DESC`
	list := []models.Customer{}
	if err := s.db.SelectContext(ctx, &list, query); err != nil {
		return nil, apperr.Persistence(err, "list customers")
	}
	return list, nil
}

// Delete removes a user with their cart, profile and addresses. Orders are
// kept for bookkeeping.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, q := range []string{
			`DELETE FROM cart_items WHERE user_id = ?`,
			`DELETE FROM customer_profiles WHERE user_id = ?`,
			`DELETE FROM addresses WHERE user_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return apperr.Persistence(err, "delete user data")
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return apperr.Persistence(err, "delete user")
		}
		return requireAffected(res, "user")
	})
}

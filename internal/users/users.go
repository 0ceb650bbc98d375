// Package users manages customer profiles, saved addresses and accounts.
package users

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/auth"
	"github.com/01moynul/storefront-api/internal/models"
)

type Accounts interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type Profiles interface {
	Get(ctx context.Context, userID int64) (*models.ShippingProfile, error)
	Upsert(ctx context.Context, p *models.ShippingProfile) error
}

type Addresses interface {
	List(ctx context.Context, userID int64) ([]models.Address, error)
	Create(ctx context.Context, a *models.Address) error
	Update(ctx context.Context, a *models.Address) error
	Delete(ctx context.Context, userID, id int64) error
}

// ProfileInput is the editable part of a shipping profile.
type ProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// AddressInput is the editable part of a saved address.
type AddressInput struct {
	Label         string
	RecipientName string
	Phone         string
	Address       string
	IsPrimary     bool
}

// Profile is a user account together with its shipping profile.
type Profile struct {
	User     *models.User            `json:"user"`
	Shipping *models.ShippingProfile `json:"shipping"`
}

type Service struct {
	accounts  Accounts
	profiles  Profiles
	addresses Addresses
}

func NewService(accounts Accounts, profiles Profiles, addresses Addresses) *Service {
	return &Service{accounts: accounts, profiles: profiles, addresses: addresses}
}

// GetProfile returns the account and its profile. A user without a profile
// gets an empty one.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	sp, err := s.profiles.Get(ctx, userID)
	switch {
	case apperr.KindOf(err) == apperr.KindNotFound:
		sp = &models.ShippingProfile{UserID: userID}
	case err != nil:
		return nil, err
	}
	return &Profile{User: u, Shipping: sp}, nil
}

// UpdateProfile creates or updates the shipping profile of a user.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*models.ShippingProfile, error) {
	p := &models.ShippingProfile{
		UserID:    userID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
	if p.FirstName == "" || p.Phone == "" || p.Address == "" {
		return nil, apperr.Validation("first name, phone and address are required")
	}
	if p.LastName == "" {
		p.LastName = "-"
	}
	if _, err := s.accounts.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" || next == "" {
		return apperr.Validation("current and new password are required")
	}
	if len(next) < auth.MinPasswordLength {
		return apperr.Validationf("password must be at least %d characters", auth.MinPasswordLength)
	}
	u, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return err
	}

	pw := models.Password{Hash: u.PasswordHash}
	ok, err := pw.Matches(current)
	if err != nil {
		return errors.Wrap(err, "compare password")
	}
	if !ok {
		return apperr.Auth("current password is incorrect")
	}
	if err := pw.Set(next); err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.accounts.UpdatePassword(ctx, userID, pw.Hash)
}

func (s *Service) ListAddresses(ctx context.Context, userID int64) ([]models.Address, error) {
	return s.addresses.List(ctx, userID)
}

func (s *Service) AddAddress(ctx context.Context, userID int64, in AddressInput) (*models.Address, error) {
	a, err := newAddress(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAddress(ctx context.Context, userID, id int64, in AddressInput) (*models.Address, error) {
	a, err := newAddress(userID, in)
	if err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.addresses.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAddress(ctx context.Context, userID, id int64) error {
	return s.addresses.Delete(ctx, userID, id)
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.accounts.ListCustomers(ctx)
}

// DeleteCustomer removes a customer account. Admin accounts cannot be
// removed this way.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	u, err := s.accounts.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleAdmin {
		return apperr.Forbidden("admin accounts cannot be deleted")
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	zctx.From(ctx).Info("Customer deleted", zap.Int64("user_id", id))
	return nil
}

func newAddress(userID int64, in AddressInput) (*models.Address, error) {
	a := &models.Address{
		UserID:        userID,
		Label:         strings.TrimSpace(in.Label),
		RecipientName: strings.TrimSpace(in.RecipientName),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		IsPrimary:     in.IsPrimary,
	}
	if a.RecipientName == "" || a.Phone == "" || a.Address == "" {
		return nil, apperr.Validation("recipient name, phone and address are required")
	}
	if a.Label == "" {
		a.Label = "home"
	}
	return a, nil
}

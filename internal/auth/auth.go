// Package auth handles registration, login and access tokens.
package auth

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var validate = validator.New()

// Users is the user store.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type Service struct {
	users  Users
	tokens *TokenManager
}

func NewService(users Users, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a customer account and logs it in.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, apperr.Validation("email is not valid")
	}
	if len(password) < MinPasswordLength {
		return nil, apperr.Validationf("password must be at least %d characters", MinPasswordLength)
	}

	var pw models.Password
	if err := pw.Set(password); err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &models.User{Username: username, Email: email, PasswordHash: pw.Hash, Role: models.RoleCustomer}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	zctx.From(ctx).Info("User registered", zap.Int64("user_id", u.ID))
	return s.session(u)
}

// Login checks credentials given a username or email.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	u, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Auth("invalid credentials")
		}
		return nil, err
	}
	pw := models.Password{Hash: u.PasswordHash}
	ok, err := pw.Matches(password)
	if err != nil {
		return nil, errors.Wrap(err, "compare password")
	}
	if !ok {
		return nil, apperr.Auth("invalid credentials")
	}
	return s.session(u)
}

// Profile returns the account of the authenticated user.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.Get(ctx, userID)
}

// Tokens exposes the token manager to the auth middleware.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

func (s *Service) session(u *models.User) (*Session, error) {
	token, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}

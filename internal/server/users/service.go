package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/google/uuid"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// Service implements registration and login on top of a Repository. It holds
// no mutable state: the secret and token lifetime are fixed at construction,
// so concurrent calls are safe.
type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// The normalized form is the login key and the stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and issues a session token for it.
//
// Validation happens before any store access: an empty normalized email or a
// password shorter than MinPasswordLength yields common.ErrorInvalidInput.
// A taken email yields common.ErrorEmailExists (enforced by the store, so
// concurrent duplicates cannot both win). Store failures surface as
// common.ErrorInternal.
func (s *Service) Register(ctx context.Context, email string, password string) (*User, string, error) {

	email = NormalizeEmail(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, "", common.ErrorInvalidInput
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: auth.HashPassword(password, salt),
		PasswordSalt: salt,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, "", common.ErrorEmailExists
		}
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies credentials and issues a fresh token with a new expiry
// window. An unknown email and a wrong password are indistinguishable to the
// caller: both yield common.ErrorInvalidCredentials. Login writes nothing.
func (s *Service) Login(ctx context.Context, email string, password string) (*User, string, error) {

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", common.ErrorInvalidInput
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mange/backend/internal/domain"
	"github.com/mange/backend/internal/repository"
)

type AuthService struct {
	repos *repository.Repos
}

// CreateUser stores the user with a bcrypt hash of the password.
func (s *AuthService) CreateUser(ctx context.Context, name, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Name: name, PasswordHash: string(hash)}
	if err := s.repos.InsertUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues a fresh opaque token, replacing
// any earlier one. Unknown user and wrong password fail identically so the
// error does not enumerate accounts.
func (s *AuthService) Login(ctx context.Context, name, password string) (*domain.Token, error) {
	u, err := s.repos.UserByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthentication
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrAuthentication
	}
	token, err := s.repos.ReplaceToken(ctx, u.ID, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate resolves an opaque token to its user.
func (s *AuthService) Authenticate(ctx context.Context, tokenValue string) (*domain.User, error) {
	u, err := s.repos.UserByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthentication
		}
		return nil, err
	}
	return u, nil
}

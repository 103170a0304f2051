package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportsbazar/catalog-api/internal/core"
	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
)

// IdentityServiceOptions groups dependencies for IdentityService.
type IdentityServiceOptions struct {
	Users core.UserRepository
}

// IdentityService maps provider identities onto local user accounts.
type IdentityService struct {
	users core.UserRepository
}

// NewIdentityService constructs a new IdentityService.
func NewIdentityService(opts IdentityServiceOptions) *IdentityService {
	return &IdentityService{users: opts.Users}
}

// Resolve looks up a local user id by email. Absence is an expected case and
// surfaces as a NotFound AppError.
func (s *IdentityService) Resolve(ctx context.Context, email string) (int64, error) {
	if email == "" {
		return 0, errors.New("email is required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Provision creates a local user for the identity. When a concurrent login
// already created the row, the unique-email conflict is treated as the
// creation signal and the existing id is returned.
func (s *IdentityService) Provision(ctx context.Context, identity domainauth.Identity) (int64, error) {
	req := &model.CreateUserRequest{
		Name:  identity.Name,
		Email: identity.Email,
	}
	if identity.Picture != "" {
		req.Picture = &identity.Picture
	}

	user, err := s.users.Create(ctx, req)
	if err == nil {
		return user.ID, nil
	}
	if !apperrors.IsConflict(err) {
		return 0, fmt.Errorf("create user: %w", err)
	}

	existing, lookupErr := s.users.GetByEmail(ctx, identity.Email)
	if lookupErr != nil {
		return 0, fmt.Errorf("lookup user after conflict: %w", lookupErr)
	}
	return existing.ID, nil
}

// EnsureUser resolves the identity's email to a local user id, provisioning a
// new account on first login.
func (s *IdentityService) EnsureUser(ctx context.Context, identity domainauth.Identity) (int64, error) {
	if identity.Email == "" {
		return 0, errors.New("identity email is required")
	}

	id, err := s.Resolve(ctx, identity.Email)
	if err == nil {
		return id, nil
	}
	if !apperrors.IsNotFound(err) {
		return 0, fmt.Errorf("resolve user: %w", err)
	}
	return s.Provision(ctx, identity)
}

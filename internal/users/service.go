// Package users implements the user directory: registration, profile
// updates, removal, and password login.
package users

import (
	"context"
	"errors"

	"github.com/dkrasnove/bloghub/internal/domain/user"
	"github.com/dkrasnove/bloghub/internal/security"
)

// Keep these interfaces small so tests can fake them easily.
type Store interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Create(ctx context.Context, username, passwordHash, role string) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type TokenIssuer interface {
	Issue(userID int64, username, role string) (string, error)
}

type Service struct {
	store  Store
	hasher *security.Hasher
	tokens TokenIssuer
}

func NewService(store Store, hasher *security.Hasher, tokens TokenIssuer) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// FindByUsername is a soft lookup: absence is a valid outcome, reported as
// a nil user rather than an error. Login relies on this.
func (s *Service) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := s.store.GetByUsername(ctx, username)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}

func (s *Service) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	hash, err := s.hasher.Hash(req.Password)

	if err != nil {
		return user.User{}, err
	}

	role := req.Role

	if role == "" {
		role = user.RoleWriter
	}

	return s.store.Create(ctx, req.Username, hash, role)
}

// Update applies the given fields over the stored record. A supplied
// password is re-hashed before persisting, same as on create.
func (s *Service) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error) {
	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		return user.User{}, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)

		if err != nil {
			return user.User{}, err
		}

		u.PasswordHash = hash
	}

	if req.Role != nil {
		u.Role = *req.Role
	}

	return s.store.Update(ctx, u)
}

// Remove deletes the user and returns the pre-deletion snapshot.
func (s *Service) Remove(ctx context.Context, id int64) (user.User, error) {
	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		return user.User{}, err
	}

	err = s.store.Delete(ctx, id)

	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// Login verifies the credentials and issues a bearer token. A missing user
// and a wrong password produce the identical error, so callers cannot tell
// which factor failed.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (string, error) {
	u, err := s.FindByUsername(ctx, req.Username)

	if err != nil {
		return "", err
	}

	if u == nil || !s.hasher.Verify(req.Password, u.PasswordHash) {
		return "", user.ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID, u.Username, u.Role)
}

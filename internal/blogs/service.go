// Package blogs implements the blog registry: listing, lookup, and
// ownership-guarded mutation.
package blogs

import (
	"context"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/dkrasnove/bloghub/internal/domain/blog"
)

type Store interface {
	List(ctx context.Context, page blog.Page) ([]blog.Blog, int, error)
	GetByID(ctx context.Context, id int64) (blog.Blog, error)
	GetByUserID(ctx context.Context, userID int64) (blog.Blog, error)
	Create(ctx context.Context, name, description string, userID int64) (blog.Blog, error)
	Update(ctx context.Context, b blog.Blog) (blog.Blog, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, page blog.Page) ([]blog.Blog, int, error) {
	return s.store.List(ctx, page)
}

func (s *Service) GetByID(ctx context.Context, id int64) (blog.Blog, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, userID int64) (blog.Blog, error) {
	return s.store.GetByUserID(ctx, userID)
}

// Create attaches the caller as owner unconditionally. Any authenticated
// user may create a blog; there is no ownership to check yet.
func (s *Service) Create(ctx context.Context, req blog.CreateBlogRequest, caller authz.Identity) (blog.Blog, error) {
	return s.store.Create(ctx, req.Name, req.Description, caller.UserID)
}

func (s *Service) Update(ctx context.Context, id int64, req blog.UpdateBlogRequest, caller authz.Identity) (blog.Blog, error) {
	b, err := s.store.GetByID(ctx, id)

	if err != nil {
		return blog.Blog{}, err
	}

	if !authz.CanMutate(caller, b.UserID) {
		return blog.Blog{}, authz.ErrForbidden
	}

	if req.Name != nil {
		b.Name = *req.Name
	}

	if req.Description != nil {
		b.Description = *req.Description
	}

	return s.store.Update(ctx, b)
}

// Remove deletes the blog (posts cascade with it) and returns the
// pre-deletion snapshot.
func (s *Service) Remove(ctx context.Context, id int64, caller authz.Identity) (blog.Blog, error) {
	b, err := s.store.GetByID(ctx, id)

	if err != nil {
		return blog.Blog{}, err
	}

	if !authz.CanMutate(caller, b.UserID) {
		return blog.Blog{}, authz.ErrForbidden
	}

	err = s.store.Delete(ctx, id)

	if err != nil {
		return blog.Blog{}, err
	}

	return b, nil
}

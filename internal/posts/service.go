// Package posts implements the post registry. A post has no ownership
// field of its own: every authorization decision resolves the parent blog
// and checks its owner, on every call.
package posts

import (
	"context"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/dkrasnove/bloghub/internal/domain/blog"
	"github.com/dkrasnove/bloghub/internal/domain/post"
)

type Store interface {
	ListByBlog(ctx context.Context, blogID int64, filter post.ListFilter) ([]post.Post, int, error)
	GetByID(ctx context.Context, id int64) (post.Post, error)
	Create(ctx context.Context, name, content string, blogID int64) (post.Post, error)
	Update(ctx context.Context, p post.Post) (post.Post, error)
	Delete(ctx context.Context, id int64) error
}

// BlogResolver is how the registry reaches the parent blog; the blogs
// service satisfies it.
type BlogResolver interface {
	GetByID(ctx context.Context, id int64) (blog.Blog, error)
}

type Service struct {
	store Store
	blogs BlogResolver
}

func NewService(store Store, blogs BlogResolver) *Service {
	return &Service{
		store: store,
		blogs: blogs,
	}
}

func (s *Service) ListByBlog(ctx context.Context, blogID int64, filter post.ListFilter) ([]post.Post, int, error) {
	if filter.Take <= 0 {
		filter.Take = blog.DefaultTake
	}

	if filter.Skip < 0 {
		filter.Skip = blog.DefaultSkip
	}

	if !filter.Order.Valid() {
		filter.Order = post.SortAsc
	}

	return s.store.ListByBlog(ctx, blogID, filter)
}

func (s *Service) GetByID(ctx context.Context, id int64) (post.Post, error) {
	return s.store.GetByID(ctx, id)
}

// Create requires the caller to be the owner of the target blog. Unlike
// update and remove there is no moderator bypass here.
func (s *Service) Create(ctx context.Context, req post.CreatePostRequest, caller authz.Identity) (post.Post, error) {
	b, err := s.blogs.GetByID(ctx, req.BlogID)

	if err != nil {
		return post.Post{}, err
	}

	if !authz.CanCreateUnder(caller, b.UserID) {
		return post.Post{}, authz.ErrForbidden
	}

	return s.store.Create(ctx, req.Name, req.Content, b.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req post.UpdatePostRequest, caller authz.Identity) (post.Post, error) {
	p, err := s.store.GetByID(ctx, id)

	if err != nil {
		return post.Post{}, err
	}

	b, err := s.blogs.GetByID(ctx, p.BlogID)

	if err != nil {
		return post.Post{}, err
	}

	if !authz.CanMutate(caller, b.UserID) {
		return post.Post{}, authz.ErrForbidden
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Content != nil {
		p.Content = *req.Content
	}

	return s.store.Update(ctx, p)
}

// Remove deletes the post and returns the pre-deletion snapshot.
func (s *Service) Remove(ctx context.Context, id int64, caller authz.Identity) (post.Post, error) {
	p, err := s.store.GetByID(ctx, id)

	if err != nil {
		return post.Post{}, err
	}

	b, err := s.blogs.GetByID(ctx, p.BlogID)

	if err != nil {
		return post.Post{}, err
	}

	if !authz.CanMutate(caller, b.UserID) {
		return post.Post{}, authz.ErrForbidden
	}

	err = s.store.Delete(ctx, id)

	if err != nil {
		return post.Post{}, err
	}

	return p, nil
}

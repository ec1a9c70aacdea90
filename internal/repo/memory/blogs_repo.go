package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkrasnove/bloghub/internal/domain/blog"
)

// BlogsRepo is an in-memory mirror of the postgres blogs repo.
type BlogsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]blog.Blog
}

func NewBlogsRepo() *BlogsRepo {
	return &BlogsRepo{
		nextID: 1,
		items:  make(map[int64]blog.Blog),
	}
}

func (r *BlogsRepo) List(ctx context.Context, page blog.Page) ([]blog.Blog, int, error) {
	page = page.Normalized()

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]blog.Blog, 0, len(r.items))

	for _, b := range r.items {
		all = append(all, b)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)

	if page.Skip >= total {
		return []blog.Blog{}, total, nil
	}

	end := page.Skip + page.Take

	if end > total {
		end = total
	}

	return all[page.Skip:end], total, nil
}

func (r *BlogsRepo) GetByID(ctx context.Context, id int64) (blog.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]

	if !ok {
		return blog.Blog{}, blog.ErrNotFound
	}

	return b, nil
}

func (r *BlogsRepo) GetByUserID(ctx context.Context, userID int64) (blog.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *blog.Blog

	for _, b := range r.items {
		if b.UserID == userID {
			b := b
			if found == nil || b.ID < found.ID {
				found = &b
			}
		}
	}

	if found == nil {
		return blog.Blog{}, blog.ErrNotFound
	}

	return *found, nil
}

func (r *BlogsRepo) Create(ctx context.Context, name, description string, userID int64) (blog.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()

	b := blog.Blog{
		ID:          r.nextID,
		Name:        name,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.nextID++
	r.items[b.ID] = b

	return b, nil
}

func (r *BlogsRepo) Update(ctx context.Context, b blog.Blog) (blog.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[b.ID]

	if !ok {
		return blog.Blog{}, blog.ErrNotFound
	}

	stored.Name = b.Name
	stored.Description = b.Description
	stored.UpdatedAt = time.Now().UTC()

	r.items[b.ID] = stored

	return stored, nil
}

func (r *BlogsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return blog.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

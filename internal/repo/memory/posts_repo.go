package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkrasnove/bloghub/internal/domain/post"
)

// PostsRepo is an in-memory mirror of the postgres posts repo.
type PostsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]post.Post
}

func NewPostsRepo() *PostsRepo {
	return &PostsRepo{
		nextID: 1,
		items:  make(map[int64]post.Post),
	}
}

func (r *PostsRepo) ListByBlog(ctx context.Context, blogID int64, filter post.ListFilter) ([]post.Post, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]post.Post, 0)

	for _, p := range r.items {
		if p.BlogID != blogID {
			continue
		}
		if filter.Name != nil && p.Name != *filter.Name {
			continue
		}
		matched = append(matched, p)
	}

	desc := filter.Order == post.SortDesc

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Name != b.Name {
			if desc {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		}
		if desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})

	total := len(matched)

	if filter.Skip >= total {
		return []post.Post{}, total, nil
	}

	end := filter.Skip + filter.Take

	if end > total {
		end = total
	}

	return matched[filter.Skip:end], total, nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id int64) (post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]

	if !ok {
		return post.Post{}, post.ErrNotFound
	}

	return p, nil
}

func (r *PostsRepo) Create(ctx context.Context, name, content string, blogID int64) (post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()

	p := post.Post{
		ID:        r.nextID,
		Name:      name,
		Content:   content,
		BlogID:    blogID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.nextID++
	r.items[p.ID] = p

	return p, nil
}

func (r *PostsRepo) Update(ctx context.Context, p post.Post) (post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[p.ID]

	if !ok {
		return post.Post{}, post.ErrNotFound
	}

	stored.Name = p.Name
	stored.Content = p.Content
	stored.UpdatedAt = time.Now().UTC()

	r.items[p.ID] = stored

	return stored, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return post.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

// DeleteByBlog mirrors the FK cascade the postgres schema provides.
func (r *PostsRepo) DeleteByBlog(ctx context.Context, blogID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.BlogID == blogID {
			delete(r.items, id)
		}
	}

	return nil
}

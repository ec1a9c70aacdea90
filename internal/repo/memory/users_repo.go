package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dkrasnove/bloghub/internal/domain/user"
)

// UsersRepo is an in-memory mirror of the postgres users repo, used in
// service tests and local experiments.
type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		nextID: 1,
		items:  make(map[int64]user.User),
	}
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Username == username {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, username, passwordHash, role string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == username {
			return user.User{}, user.ErrUsernameTaken
		}
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.nextID++
	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[u.ID]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	for id, existing := range r.items {
		if id != u.ID && existing.Username == u.Username {
			return user.User{}, user.ErrUsernameTaken
		}
	}

	stored.Username = u.Username
	stored.PasswordHash = u.PasswordHash
	stored.Role = u.Role
	stored.UpdatedAt = time.Now().UTC()

	r.items[u.ID] = stored

	return stored, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return user.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/dkrasnove/bloghub/internal/domain/blog"
	"github.com/dkrasnove/bloghub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlogsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewBlogsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BlogsRepo {
	return &BlogsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *BlogsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// List returns one page of blogs plus the total count, computed from the
// same query so the two never disagree.
func (r *BlogsRepo) List(ctx context.Context, page blog.Page) ([]blog.Blog, int, error) {
	page = page.Normalized()

	query := `SELECT id,
		name,
		description,
		user_id,
		created_at,
		updated_at,
		COUNT(*) OVER() AS total
	FROM blogs
	ORDER BY id ASC
	LIMIT $1 OFFSET $2`

	output := make([]blog.Blog, 0, page.Take)
	total := 0

	err := r.observe("blogs.list", func() error {
		rows, err := r.pool.Query(ctx, query, page.Take, page.Skip)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var b blog.Blog
			var t int

			err = rows.Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt, &b.UpdatedAt, &t)

			if err != nil {
				return err
			}

			total = t
			output = append(output, b)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

func (r *BlogsRepo) GetByID(ctx context.Context, id int64) (blog.Blog, error) {
	var b blog.Blog

	err := r.observe("blogs.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, description, user_id, created_at, updated_at
			FROM blogs
			WHERE id = $1`,
			id,
		).Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return blog.Blog{}, blog.ErrNotFound
		}

		return blog.Blog{}, err
	}

	return b, nil
}

// GetByUserID resolves the blog owned by a user. One blog per user is a
// convention, not a constraint; the oldest wins if there are several.
func (r *BlogsRepo) GetByUserID(ctx context.Context, userID int64) (blog.Blog, error) {
	var b blog.Blog

	err := r.observe("blogs.get_by_user_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, description, user_id, created_at, updated_at
			FROM blogs
			WHERE user_id = $1
			ORDER BY id ASC
			LIMIT 1`,
			userID,
		).Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return blog.Blog{}, blog.ErrNotFound
		}

		return blog.Blog{}, err
	}

	return b, nil
}

func (r *BlogsRepo) Create(ctx context.Context, name, description string, userID int64) (blog.Blog, error) {
	var b blog.Blog

	err := r.observe("blogs.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO blogs(name, description, user_id)
			VALUES ($1, $2, $3)
			RETURNING id, name, description, user_id, created_at, updated_at`,
			name, description, userID,
		).Scan(&b.ID, &b.Name, &b.Description, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		return blog.Blog{}, err
	}

	return b, nil
}

// Update persists the full merged row; callers load and merge first.
func (r *BlogsRepo) Update(ctx context.Context, b blog.Blog) (blog.Blog, error) {
	var out blog.Blog

	err := r.observe("blogs.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE blogs
				SET name = $2,
					description = $3,
					updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, description, user_id, created_at, updated_at`,
			b.ID,
			b.Name,
			b.Description,
		).Scan(&out.ID, &out.Name, &out.Description, &out.UserID, &out.CreatedAt, &out.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return blog.Blog{}, blog.ErrNotFound
		}

		return blog.Blog{}, err
	}

	return out, nil
}

// Delete removes the blog; posts go with it via the FK cascade.
func (r *BlogsRepo) Delete(ctx context.Context, id int64) error {
	var tag pgconn.CommandTag

	err := r.observe("blogs.delete", func() error {
		var execErr error
		tag, execErr = r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
		return execErr
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return blog.ErrNotFound
	}

	return nil
}

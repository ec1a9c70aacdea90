package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkrasnove/bloghub/internal/domain/post"
	"github.com/dkrasnove/bloghub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPostsRepo(pool *pgxpool.Pool, prom *observability.Prom) *PostsRepo {
	return &PostsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *PostsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// ListByBlog builds a query constrained to blogID, optionally narrowed by
// exact name match, ordered by name with the requested direction. The total
// reflects the filtered set, computed from the same query as the page.
func (r *PostsRepo) ListByBlog(ctx context.Context, blogID int64, filter post.ListFilter) ([]post.Post, int, error) {
	baseQuery := `SELECT id,
		name,
		content,
		blog_id,
		created_at,
		updated_at,
		COUNT(*) OVER() AS total
	FROM posts
	`

	conds := []string{"blog_id = $1"}
	args := []interface{}{blogID}

	argsPosition := 2

	if filter.Name != nil {
		conds = append(conds, fmt.Sprintf("name = $%d", argsPosition))
		args = append(args, *filter.Name)
		argsPosition++
	}

	direction := "ASC"
	if filter.Order == post.SortDesc {
		direction = "DESC"
	}

	query := baseQuery + " WHERE " + strings.Join(conds, " AND ")

	// stable ordering for pagination
	query += fmt.Sprintf(" ORDER BY name %s, id %s LIMIT $%d OFFSET $%d", direction, direction, argsPosition, argsPosition+1)

	args = append(args, filter.Take, filter.Skip)

	output := make([]post.Post, 0, filter.Take)
	total := 0

	err := r.observe("posts.list_by_blog", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var p post.Post
			var t int

			err = rows.Scan(&p.ID, &p.Name, &p.Content, &p.BlogID, &p.CreatedAt, &p.UpdatedAt, &t)

			if err != nil {
				return err
			}

			total = t
			output = append(output, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id int64) (post.Post, error) {
	var p post.Post

	err := r.observe("posts.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, content, blog_id, created_at, updated_at
			FROM posts
			WHERE id = $1`,
			id,
		).Scan(&p.ID, &p.Name, &p.Content, &p.BlogID, &p.CreatedAt, &p.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}

		return post.Post{}, err
	}

	return p, nil
}

func (r *PostsRepo) Create(ctx context.Context, name, content string, blogID int64) (post.Post, error) {
	var p post.Post

	err := r.observe("posts.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO posts(name, content, blog_id)
			VALUES ($1, $2, $3)
			RETURNING id, name, content, blog_id, created_at, updated_at`,
			name, content, blogID,
		).Scan(&p.ID, &p.Name, &p.Content, &p.BlogID, &p.CreatedAt, &p.UpdatedAt)
	})

	if err != nil {
		return post.Post{}, err
	}

	return p, nil
}

// Update persists the full merged row; callers load and merge first.
func (r *PostsRepo) Update(ctx context.Context, p post.Post) (post.Post, error) {
	var out post.Post

	err := r.observe("posts.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE posts
				SET name = $2,
					content = $3,
					updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, content, blog_id, created_at, updated_at`,
			p.ID,
			p.Name,
			p.Content,
		).Scan(&out.ID, &out.Name, &out.Content, &out.BlogID, &out.CreatedAt, &out.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}

		return post.Post{}, err
	}

	return out, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id int64) error {
	var tag pgconn.CommandTag

	err := r.observe("posts.delete", func() error {
		var execErr error
		tag, execErr = r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		return execErr
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}

	return nil
}

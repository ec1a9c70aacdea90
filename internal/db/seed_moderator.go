package db

import (
	"context"
	"errors"

	"github.com/dkrasnove/bloghub/internal/config"
	"github.com/dkrasnove/bloghub/internal/domain/user"
	"github.com/dkrasnove/bloghub/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureModeratorUser seeds the bootstrap moderator account when configured
// and absent. Safe to run on every startup.
func EnsureModeratorUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.ModeratorUsername == "" || cfg.ModeratorPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, cfg.ModeratorUsername).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hasher := security.NewHasher(cfg.BcryptCost)

	hash, err := hasher.Hash(cfg.ModeratorPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		`,
		cfg.ModeratorUsername, hash, user.RoleModerator,
	)

	return err
}

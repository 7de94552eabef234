package apikeyrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/pg"
)

const keyColumns = "id, user_id, name, hashed_key, permissions, expires_at, revoked, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanKey(row pgx.Row) (*domain.APIKey, error) {
	var key domain.APIKey
	err := row.Scan(&key.ID, &key.UserID, &key.Name, &key.HashedKey, &key.Permissions,
		&key.ExpiresAt, &key.Revoked, &key.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *Repository) Create(ctx context.Context, key *domain.APIKey) (*domain.APIKey, error) {
	query := `
		INSERT INTO api_keys (id, user_id, name, hashed_key, permissions, expires_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, key.ID, key.UserID, key.Name, key.HashedKey,
		key.Permissions, key.ExpiresAt, key.Revoked).Scan(&key.CreatedAt)
	if err != nil {
		zap.L().Error("can't save api key", zap.Error(err))
		return nil, err
	}
	return key, nil
}

func (r *Repository) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.APIKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys WHERE id = $1 AND user_id = $2`
	key, err := scanKey(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		zap.L().Error("can't find api key", zap.Error(err))
		return nil, err
	}
	return key, nil
}

// GetByHash resolves a presented key by its deterministic hash.
func (r *Repository) GetByHash(ctx context.Context, hashedKey string) (*domain.APIKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys WHERE hashed_key = $1`
	key, err := scanKey(r.db.QueryRow(ctx, query, hashedKey))
	if err != nil {
		zap.L().Error("can't find api key by hash", zap.Error(err))
		return nil, err
	}
	return key, nil
}

func (r *Repository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM api_keys
		WHERE user_id = $1 AND NOT revoked AND expires_at > now()
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		zap.L().Error("can't count active api keys", zap.Error(err))
		return 0, err
	}
	return count, nil
}

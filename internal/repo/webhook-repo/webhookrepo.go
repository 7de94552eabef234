package webhookrepo

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, webhook *domain.Webhook) (*domain.Webhook, error) {
	query := `
		INSERT INTO webhooks (id, provider, payload, headers, processed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING received_at
	`
	err := r.db.QueryRow(ctx, query, webhook.ID, webhook.Provider, webhook.Payload, webhook.Headers, webhook.Processed).
		Scan(&webhook.ReceivedAt)
	if err != nil {
		zap.L().Error("can't save webhook record", zap.Error(err))
		return nil, err
	}
	return webhook, nil
}

func (r *Repository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE webhooks SET processed = TRUE WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't mark webhook processed", zap.Error(err))
		return err
	}
	return nil
}

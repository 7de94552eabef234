package walletrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/pg"
)

const walletColumns = "id, user_id, wallet_number, balance, currency, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.WalletNumber, &wallet.Balance, &wallet.Currency, &wallet.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) Create(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	query := `
		INSERT INTO wallets (id, user_id, wallet_number, balance, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, wallet.ID, wallet.UserID, wallet.WalletNumber, wallet.Balance, wallet.Currency).
		Scan(&wallet.CreatedAt)
	if err != nil {
		zap.L().Error("can't save wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("can't find wallet by user", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) GetByWalletNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_number = $1`
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, walletNumber))
	if err != nil {
		zap.L().Error("can't find wallet by number", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		zap.L().Error("can't find wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// GetByIDForUpdate reads a wallet under a row lock. Only meaningful
// inside a TXManager unit; the lock is held until that unit commits.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		zap.L().Error("can't lock wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) Credit(ctx context.Context, id uuid.UUID, amount int64) error {
	query := `UPDATE wallets SET balance = balance + $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, amount, id)
	if err != nil {
		zap.L().Error("can't credit wallet", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Debit applies a relative balance decrease, guarded so the balance can
// never cross zero. Returns false with no error when the guard rejects
// the update.
func (r *Repository) Debit(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	query := `UPDATE wallets SET balance = balance - $1 WHERE id = $2 AND balance >= $1`
	tag, err := r.db.Exec(ctx, query, amount, id)
	if err != nil {
		zap.L().Error("can't debit wallet", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

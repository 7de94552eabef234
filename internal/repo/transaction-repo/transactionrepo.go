package transactionrepo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/pg"
)

const txColumns = "id, reference, wallet_id, user_id, type, direction, amount, status, extra, related_tx_id, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.Reference, &tx.WalletID, &tx.UserID, &tx.Type, &tx.Direction,
		&tx.Amount, &tx.Status, &tx.Extra, &tx.RelatedTxID, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (id, reference, wallet_id, user_id, type, direction, amount, status, extra, related_tx_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, tx.ID, tx.Reference, tx.WalletID, tx.UserID, tx.Type,
		tx.Direction, tx.Amount, tx.Status, tx.Extra, tx.RelatedTxID).Scan(&tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE reference = $1`
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, reference))
	if err != nil {
		zap.L().Error("can't find transaction by reference", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) GetByReferenceAndUser(ctx context.Context, reference string, userID uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE reference = $1 AND user_id = $2`
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, reference, userID))
	if err != nil {
		zap.L().Error("can't find transaction by reference and user", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

// ListByWalletID returns the wallet's full history in insertion order.
func (r *Repository) ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE wallet_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, walletID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.Reference, &tx.WalletID, &tx.UserID, &tx.Type, &tx.Direction,
			&tx.Amount, &tx.Status, &tx.Extra, &tx.RelatedTxID, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// MarkSettled transitions a pending transaction to success and attaches
// the gateway event in one conditional statement. The status predicate
// is the serialization point for duplicate settlement: of N concurrent
// deliveries for one reference, exactly one update matches a row. Nil
// result means the transaction was not pending anymore (or never
// existed) and nothing changed.
func (r *Repository) MarkSettled(ctx context.Context, reference string, extra json.RawMessage) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2, extra = $3
		WHERE reference = $1 AND status = $4
		RETURNING ` + txColumns
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, reference,
		domain.TransactionStatusSuccess, extra, domain.TransactionStatusPending))
	if err != nil {
		zap.L().Error("can't settle transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

// MarkFailed transitions a pending transaction to failed under the same
// status predicate as MarkSettled. A delivery reporting failure after a
// concurrent settlement already credited the wallet matches no row and
// leaves the terminal success untouched.
func (r *Repository) MarkFailed(ctx context.Context, reference string, extra json.RawMessage) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2, extra = $3
		WHERE reference = $1 AND status = $4
		RETURNING ` + txColumns
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, reference,
		domain.TransactionStatusFailed, extra, domain.TransactionStatusPending))
	if err != nil {
		zap.L().Error("can't mark transaction failed", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $2 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, status); err != nil {
		zap.L().Error("can't update transaction status", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetRelated(ctx context.Context, id, relatedTxID uuid.UUID) error {
	query := `UPDATE transactions SET related_tx_id = $2 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, relatedTxID); err != nil {
		zap.L().Error("can't link transaction", zap.Error(err))
		return err
	}
	return nil
}

// FindPendingDeposits lists deposits still waiting for settlement, for
// the reconciliation poller.
func (r *Repository) FindPendingDeposits(ctx context.Context, limit uint32) ([]domain.Transaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM transactions
		WHERE type = $1 AND status = $2
		ORDER BY created_at ASC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, domain.TransactionTypeDeposit, domain.TransactionStatusPending, limit)
	if err != nil {
		zap.L().Error("can't get pending deposits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.Reference, &tx.WalletID, &tx.UserID, &tx.Type, &tx.Direction,
			&tx.Amount, &tx.Status, &tx.Extra, &tx.RelatedTxID, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

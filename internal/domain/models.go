package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeFee        TransactionType = "fee"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

type TransactionDirection string

const (
	TransactionDirectionCredit TransactionDirection = "credit"
	TransactionDirectionDebit  TransactionDirection = "debit"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

type User struct {
	ID        uuid.UUID `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	GoogleID  string    `db:"google_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Wallet holds a user's balance in minor currency units (kobo for NGN).
// The balance never goes negative; debits are guarded by the caller and
// by a CHECK constraint in the schema.
type Wallet struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	WalletNumber string    `db:"wallet_number"`
	Balance      int64     `db:"balance"`
	Currency     string    `db:"currency"`
	CreatedAt    time.Time `db:"created_at"`
}

// Transaction is a single ledger record. Transfers produce two of them,
// one per wallet, linked through RelatedTxID. Amount is always positive;
// Direction says which way the money moved.
type Transaction struct {
	ID          uuid.UUID            `db:"id"`
	Reference   string               `db:"reference"`
	WalletID    uuid.UUID            `db:"wallet_id"`
	UserID      uuid.UUID            `db:"user_id"`
	Type        TransactionType      `db:"type"`
	Direction   TransactionDirection `db:"direction"`
	Amount      int64                `db:"amount"`
	Status      TransactionStatus    `db:"status"`
	Extra       json.RawMessage      `db:"extra"`
	RelatedTxID *uuid.UUID           `db:"related_tx_id"`
	CreatedAt   time.Time            `db:"created_at"`
}

type APIKey struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	HashedKey   string    `db:"hashed_key"`
	Permissions []string  `db:"permissions"`
	ExpiresAt   time.Time `db:"expires_at"`
	Revoked     bool      `db:"revoked"`
	CreatedAt   time.Time `db:"created_at"`
}

func (k *APIKey) IsActive() bool {
	return !k.Revoked && k.ExpiresAt.After(time.Now())
}

func (k *APIKey) HasPermission(permission string) bool {
	for _, p := range k.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Webhook is the audit record of one inbound gateway delivery. Processed
// stays false when handling raised an unexpected failure, so the
// delivery can be investigated and replayed.
type Webhook struct {
	ID         uuid.UUID       `db:"id"`
	Provider   string          `db:"provider"`
	Payload    json.RawMessage `db:"payload"`
	Headers    json.RawMessage `db:"headers"`
	Processed  bool            `db:"processed"`
	ReceivedAt time.Time       `db:"received_at"`
}

package walletrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/kudiwallet/kudiwallet/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	wallet := &domain.Wallet{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		WalletNumber: "4929804463622139",
		Balance:      0,
		Currency:     "NGN",
	}
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates wallet",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO wallets (id, user_id, wallet_number, balance, currency)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`)).
					WithArgs(wallet.ID, wallet.UserID, wallet.WalletNumber, wallet.Balance, wallet.Currency).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO wallets (id, user_id, wallet_number, balance, currency)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`)).
					WithArgs(wallet.ID, wallet.UserID, wallet.WalletNumber, wallet.Balance, wallet.Currency).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), wallet)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, now, result.CreatedAt)
			}
		})
	}
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	userID := uuid.New()
	walletID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Wallet
	}{
		{
			name: "Valid userID returns wallet",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "wallet_number", "balance", "currency", "created_at"}).
					AddRow(walletID, userID, "4929804463622139", int64(150000), "NGN", now)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, wallet_number, balance, currency, created_at FROM wallets WHERE user_id = $1`)).
					WithArgs(userID).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Wallet{
				ID:           walletID,
				UserID:       userID,
				WalletNumber: "4929804463622139",
				Balance:      150000,
				Currency:     "NGN",
				CreatedAt:    now,
			},
		},
		{
			name: "Non-existing userID returns nil",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, wallet_number, balance, currency, created_at FROM wallets WHERE user_id = $1`)).
					WithArgs(userID).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, wallet_number, balance, currency, created_at FROM wallets WHERE user_id = $1`)).
					WithArgs(userID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByUserID(context.Background(), userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_GetByWalletNumber(t *testing.T) {
	repo, mock := NewMock(t)

	walletID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	t.Run("Valid wallet number returns wallet", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "wallet_number", "balance", "currency", "created_at"}).
			AddRow(walletID, userID, "4556737586899855", int64(1000), "NGN", now)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, wallet_number, balance, currency, created_at FROM wallets WHERE wallet_number = $1`)).
			WithArgs("4556737586899855").
			WillReturnRows(rows)

		result, err := repo.GetByWalletNumber(context.Background(), "4556737586899855")
		assert.NoError(t, err)
		assert.Equal(t, walletID, result.ID)
		assert.Equal(t, int64(1000), result.Balance)
	})

	t.Run("Unknown wallet number returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, wallet_number, balance, currency, created_at FROM wallets WHERE wallet_number = $1`)).
			WithArgs("0000000000000000").
			WillReturnError(pgx.ErrNoRows)

		result, err := repo.GetByWalletNumber(context.Background(), "0000000000000000")
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	repo, mock := NewMock(t)

	walletID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	t.Run("Locks and returns the wallet", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "wallet_number", "balance", "currency", "created_at"}).
			AddRow(walletID, userID, "4929804463622139", int64(5000), "NGN", now)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, wallet_number, balance, currency, created_at FROM wallets WHERE id = $1 FOR UPDATE`)).
			WithArgs(walletID).
			WillReturnRows(rows)

		result, err := repo.GetByIDForUpdate(context.Background(), walletID)
		assert.NoError(t, err)
		assert.Equal(t, int64(5000), result.Balance)
	})
}

func TestRepository_Credit(t *testing.T) {
	repo, mock := NewMock(t)

	walletID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully credits wallet",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = balance + $1 WHERE id = $2`)).
					WithArgs(int64(5000), walletID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name: "Unknown wallet yields error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = balance + $1 WHERE id = $2`)).
					WithArgs(int64(5000), walletID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = balance + $1 WHERE id = $2`)).
					WithArgs(int64(5000), walletID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Credit(context.Background(), walletID, 5000)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Debit(t *testing.T) {
	repo, mock := NewMock(t)

	walletID := uuid.New()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		debited   bool
	}{
		{
			name: "Successfully debits wallet",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = balance - $1 WHERE id = $2 AND balance >= $1`)).
					WithArgs(int64(2000), walletID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			debited: true,
		},
		{
			name: "Guard rejects overdraft",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = balance - $1 WHERE id = $2 AND balance >= $1`)).
					WithArgs(int64(2000), walletID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			debited: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = balance - $1 WHERE id = $2 AND balance >= $1`)).
					WithArgs(int64(2000), walletID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			debited, err := repo.Debit(context.Background(), walletID, 2000)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.debited, debited)
			}
		})
	}
}

package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	apikeyrepo "github.com/kudiwallet/kudiwallet/internal/repo/apikey-repo"
	transactionrepo "github.com/kudiwallet/kudiwallet/internal/repo/transaction-repo"
	userrepo "github.com/kudiwallet/kudiwallet/internal/repo/user-repo"
	walletrepo "github.com/kudiwallet/kudiwallet/internal/repo/wallet-repo"
	webhookrepo "github.com/kudiwallet/kudiwallet/internal/repo/webhook-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.WalletRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.APIKeyRepo)
	assert.NotNil(t, repo.WebhookRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &walletrepo.Repository{}, repo.WalletRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &apikeyrepo.Repository{}, repo.APIKeyRepo)
	assert.IsType(t, &webhookrepo.Repository{}, repo.WebhookRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}

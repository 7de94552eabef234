package repo

import (
	"github.com/kudiwallet/kudiwallet/internal/pg"
	apikeyrepo "github.com/kudiwallet/kudiwallet/internal/repo/apikey-repo"
	transactionrepo "github.com/kudiwallet/kudiwallet/internal/repo/transaction-repo"
	userrepo "github.com/kudiwallet/kudiwallet/internal/repo/user-repo"
	walletrepo "github.com/kudiwallet/kudiwallet/internal/repo/wallet-repo"
	webhookrepo "github.com/kudiwallet/kudiwallet/internal/repo/webhook-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	WalletRepo      *walletrepo.Repository
	TransactionRepo *transactionrepo.Repository
	APIKeyRepo      *apikeyrepo.Repository
	WebhookRepo     *webhookrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		WalletRepo:      walletrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		APIKeyRepo:      apikeyrepo.New(conn),
		WebhookRepo:     webhookrepo.New(conn),
	}
}

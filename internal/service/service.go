package service

import (
	"github.com/kudiwallet/kudiwallet/internal/config"
	"github.com/kudiwallet/kudiwallet/internal/pg"
	"github.com/kudiwallet/kudiwallet/internal/repo"
	"github.com/kudiwallet/kudiwallet/internal/service/apikeyservice"
	"github.com/kudiwallet/kudiwallet/internal/service/authservice"
	"github.com/kudiwallet/kudiwallet/internal/service/walletservice"
	pkgauth "github.com/kudiwallet/kudiwallet/pkg/auth"
)

type Services struct {
	AuthService   *authservice.Service
	WalletService *walletservice.Service
	APIKeyService *apikeyservice.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, gateway walletservice.Gateway, google authservice.GoogleClient, jwtService pkgauth.JWTServiceInterface) *Services {
	walletService := walletservice.New(cfg, repo.WalletRepo, repo.TransactionRepo, repo.WebhookRepo, repo.UserRepo, gateway, txManager)
	authService := authservice.New(repo.UserRepo, repo.WalletRepo, google, jwtService, txManager, cfg.JWTExpiration)
	apiKeyService := apikeyservice.New(cfg, repo.APIKeyRepo)

	return &Services{
		AuthService:   authService,
		WalletService: walletService,
		APIKeyService: apiKeyService,
	}
}

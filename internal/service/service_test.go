package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/kudiwallet/kudiwallet/internal/config"
	"github.com/kudiwallet/kudiwallet/internal/pg"
	"github.com/kudiwallet/kudiwallet/internal/repo"
	"github.com/kudiwallet/kudiwallet/internal/service/authservice"
	"github.com/kudiwallet/kudiwallet/internal/service/walletservice"
	pkgauth "github.com/kudiwallet/kudiwallet/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{JWTSecret: "test-secret"}
	repos := &repo.Repositories{}
	txManager := pg.NewMockTXManager(ctrl)
	gateway := walletservice.NewMockGateway(ctrl)
	google := authservice.NewMockGoogleClient(ctrl)
	jwtService := pkgauth.NewJWTService(cfg.JWTSecret)

	services := New(cfg, repos, txManager, gateway, google, jwtService)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.WalletService)
	assert.NotNil(t, services.APIKeyService)
}

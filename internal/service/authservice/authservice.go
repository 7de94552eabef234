package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/ShiraazMoollatjie/goluhn"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/pg"
	"github.com/kudiwallet/kudiwallet/pkg/auth"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type WalletRepo interface {
	Create(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error)
}

type GoogleClient interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	UserInfo(ctx context.Context, accessToken string) (*GoogleUser, error)
}

var ErrInvalidUserInfo = errors.New("invalid user information from google")

const (
	walletNumberLength = 16
	defaultCurrency    = "NGN"
)

type Service struct {
	userRepo   UserRepo
	walletRepo WalletRepo
	google     GoogleClient
	jwtService auth.JWTServiceInterface
	txManager  pg.TXManager
	jwtTTL     time.Duration
}

func New(userRepo UserRepo, walletRepo WalletRepo, google GoogleClient, jwtService auth.JWTServiceInterface, txManager pg.TXManager, jwtTTL time.Duration) *Service {
	return &Service{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		google:     google,
		jwtService: jwtService,
		txManager:  txManager,
		jwtTTL:     jwtTTL,
	}
}

func (s *Service) LoginURL() string {
	state := uuid.NewString()
	return s.google.AuthURL(state)
}

// AuthenticateGoogle exchanges the OAuth callback code, provisions the
// user and their wallet on first login (one wallet per user, balance 0,
// created in the same unit as the user), and issues a JWT.
func (s *Service) AuthenticateGoogle(ctx context.Context, code string) (*domain.User, string, error) {
	accessToken, err := s.google.Exchange(ctx, code)
	if err != nil {
		zap.L().Error("can't exchange authorization code", zap.Error(err))
		return nil, "", err
	}

	info, err := s.google.UserInfo(ctx, accessToken)
	if err != nil {
		zap.L().Error("can't fetch user info", zap.Error(err))
		return nil, "", err
	}
	if info.Email == "" || info.ID == "" {
		return nil, "", ErrInvalidUserInfo
	}

	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		user = &domain.User{
			ID:       uuid.New(),
			FullName: info.Name,
			Email:    info.Email,
			GoogleID: info.ID,
		}
		if user.FullName == "" {
			user.FullName = info.Email
		}
		err = s.txManager.Begin(ctx, func(ctx context.Context) error {
			if _, err := s.userRepo.Create(ctx, user); err != nil {
				return err
			}
			wallet := &domain.Wallet{
				ID:           uuid.New(),
				UserID:       user.ID,
				WalletNumber: goluhn.Generate(walletNumberLength),
				Balance:      0,
				Currency:     defaultCurrency,
			}
			_, err := s.walletRepo.Create(ctx, wallet)
			return err
		})
		if err != nil {
			zap.L().Error("can't provision user and wallet", zap.Error(err))
			return nil, "", err
		}
		zap.L().Info("new user provisioned", zap.String("user_id", user.ID.String()))
	}

	token, err := s.jwtService.GenerateJWT(user.ID, time.Now().Add(s.jwtTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return nil, "", err
	}
	return user, token, nil
}

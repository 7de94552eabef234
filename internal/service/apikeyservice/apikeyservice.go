package apikeyservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/config"
	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/pkg/auth"
)

type APIKeyRepo interface {
	Create(ctx context.Context, key *domain.APIKey) (*domain.APIKey, error)
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.APIKey, error)
	GetByHash(ctx context.Context, hashedKey string) (*domain.APIKey, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

var (
	ErrKeyLimitExceeded  = errors.New("active api key limit exceeded")
	ErrInvalidPermission = errors.New("invalid permission")
	ErrKeyNotFound       = errors.New("api key not found")
	ErrKeyStillActive    = errors.New("cannot rollover active key")
	ErrKeyInactive       = errors.New("api key is revoked or expired")
)

var validPermissions = []string{"deposit", "transfer", "read"}

type CreatedKey struct {
	PlainKey    string
	ExpiresAt   time.Time
	Permissions []string
}

type Service struct {
	keyRepo       APIKeyRepo
	maxActiveKeys int
}

func New(cfg *config.Config, keyRepo APIKeyRepo) *Service {
	return &Service{
		keyRepo:       keyRepo,
		maxActiveKeys: cfg.MaxActiveAPIKeys,
	}
}

// CreateKey issues a new key; the plain value is returned once and only
// its SHA-256 hash is stored.
func (s *Service) CreateKey(ctx context.Context, userID uuid.UUID, name string, permissions []string, expiry string) (*CreatedKey, error) {
	expiresAt, err := auth.ParseExpiry(expiry)
	if err != nil {
		return nil, err
	}

	for _, p := range permissions {
		if !isValidPermission(p) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPermission, p)
		}
	}

	if err := s.checkActiveLimit(ctx, userID); err != nil {
		return nil, err
	}

	plainKey, err := auth.GenerateAPIKey()
	if err != nil {
		zap.L().Error("can't generate api key", zap.Error(err))
		return nil, err
	}

	key := &domain.APIKey{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		HashedKey:   auth.HashAPIKey(plainKey),
		Permissions: permissions,
		ExpiresAt:   expiresAt,
	}
	if _, err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	zap.L().Info("api key created", zap.String("user_id", userID.String()), zap.String("key_id", key.ID.String()))
	return &CreatedKey{
		PlainKey:    plainKey,
		ExpiresAt:   expiresAt,
		Permissions: permissions,
	}, nil
}

// RolloverKey reissues an expired key with a fresh expiry, keeping its
// name and permissions. Active keys cannot be rolled over.
func (s *Service) RolloverKey(ctx context.Context, userID, keyID uuid.UUID, expiry string) (*CreatedKey, error) {
	oldKey, err := s.keyRepo.GetByIDAndUser(ctx, keyID, userID)
	if err != nil {
		return nil, err
	}
	if oldKey == nil {
		return nil, ErrKeyNotFound
	}
	if oldKey.IsActive() {
		return nil, ErrKeyStillActive
	}

	expiresAt, err := auth.ParseExpiry(expiry)
	if err != nil {
		return nil, err
	}

	if err := s.checkActiveLimit(ctx, userID); err != nil {
		return nil, err
	}

	plainKey, err := auth.GenerateAPIKey()
	if err != nil {
		zap.L().Error("can't generate api key", zap.Error(err))
		return nil, err
	}

	key := &domain.APIKey{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        oldKey.Name,
		HashedKey:   auth.HashAPIKey(plainKey),
		Permissions: oldKey.Permissions,
		ExpiresAt:   expiresAt,
	}
	if _, err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	zap.L().Info("api key rolled over", zap.String("old_key_id", keyID.String()), zap.String("key_id", key.ID.String()))
	return &CreatedKey{
		PlainKey:    plainKey,
		ExpiresAt:   expiresAt,
		Permissions: oldKey.Permissions,
	}, nil
}

// ResolveKey authenticates a presented plain key. Unknown keys resolve
// to (nil, nil); known but revoked or expired keys are an error.
func (s *Service) ResolveKey(ctx context.Context, plainKey string) (*domain.APIKey, error) {
	key, err := s.keyRepo.GetByHash(ctx, auth.HashAPIKey(plainKey))
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, nil
	}
	if !key.IsActive() {
		zap.L().Warn("inactive api key presented", zap.String("key_id", key.ID.String()))
		return nil, ErrKeyInactive
	}
	return key, nil
}

func (s *Service) checkActiveLimit(ctx context.Context, userID uuid.UUID) error {
	active, err := s.keyRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	if active >= s.maxActiveKeys {
		return fmt.Errorf("%w: maximum %d active keys", ErrKeyLimitExceeded, s.maxActiveKeys)
	}
	return nil
}

func isValidPermission(permission string) bool {
	for _, p := range validPermissions {
		if p == permission {
			return true
		}
	}
	return false
}

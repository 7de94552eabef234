package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kudiwallet/kudiwallet/internal/domain"
)

type stubResolver struct {
	key *domain.APIKey
	err error
}

func (s stubResolver) ResolveKey(context.Context, string) (*domain.APIKey, error) {
	return s.key, s.err
}

func TestAuthenticatorMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	userID := uuid.New()
	token, err := jwtService.GenerateJWT(userID, time.Now().Add(time.Hour))
	assert.NoError(t, err)

	activeKey := &domain.APIKey{
		ID:          uuid.New(),
		UserID:      userID,
		Permissions: []string{"read"},
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	tests := []struct {
		name           string
		setHeaders     func(r *http.Request)
		resolver       KeyResolver
		expectedStatus int
		wantKey        bool
	}{
		{
			name: "Valid JWT authenticates",
			setHeaders: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			resolver:       stubResolver{},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Invalid JWT rejected",
			setHeaders: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			resolver:       stubResolver{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Valid API key authenticates",
			setHeaders: func(r *http.Request) {
				r.Header.Set("x-api-key", "sk_live__goodkey")
			},
			resolver:       stubResolver{key: activeKey},
			expectedStatus: http.StatusOK,
			wantKey:        true,
		},
		{
			name: "Unknown API key rejected",
			setHeaders: func(r *http.Request) {
				r.Header.Set("x-api-key", "sk_live__unknown")
			},
			resolver:       stubResolver{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "No credentials rejected",
			setHeaders:     func(r *http.Request) {},
			resolver:       stubResolver{},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := NewAuthenticator(jwtService, tt.resolver)

			var gotCtx AuthContext
			var authenticated bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCtx, authenticated = FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/wallet/balance", nil)
			tt.setHeaders(req)
			rec := httptest.NewRecorder()

			authn.Middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, authenticated)
				assert.Equal(t, userID, gotCtx.UserID)
				if tt.wantKey {
					assert.NotNil(t, gotCtx.Key)
				} else {
					assert.Nil(t, gotCtx.Key)
				}
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		ctx            AuthContext
		permission     string
		expectedStatus int
	}{
		{
			name:           "JWT caller holds every permission",
			ctx:            AuthContext{UserID: userID},
			permission:     "transfer",
			expectedStatus: http.StatusOK,
		},
		{
			name: "Key with the permission passes",
			ctx: AuthContext{UserID: userID, Key: &domain.APIKey{
				Permissions: []string{"deposit", "transfer"},
				ExpiresAt:   time.Now().Add(time.Hour),
			}},
			permission:     "transfer",
			expectedStatus: http.StatusOK,
		},
		{
			name: "Key without the permission forbidden",
			ctx: AuthContext{UserID: userID, Key: &domain.APIKey{
				Permissions: []string{"read"},
				ExpiresAt:   time.Now().Add(time.Hour),
			}},
			permission:     "transfer",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/wallet/transfer", nil)
			req = req.WithContext(context.WithValue(req.Context(), AuthKey, tt.ctx))
			rec := httptest.NewRecorder()

			RequirePermission(tt.permission)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}

	t.Run("Missing auth context rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/wallet/transfer", nil)
		rec := httptest.NewRecorder()

		RequirePermission("transfer")(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

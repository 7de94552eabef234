package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/pkg/utils"
)

type ContextKey string

const AuthKey ContextKey = "auth"

// AuthContext is the result of header-based authentication: the acting
// user plus, for the API-key variant, the key itself. Key is nil when
// the request carried a JWT; permission checks only apply to keys.
type AuthContext struct {
	UserID uuid.UUID
	Key    *domain.APIKey
}

// KeyResolver looks up an active API key by its presented plain value.
type KeyResolver interface {
	ResolveKey(ctx context.Context, plainKey string) (*domain.APIKey, error)
}

type Authenticator struct {
	jwtService JWTServiceInterface
	keys       KeyResolver
}

func NewAuthenticator(jwtService JWTServiceInterface, keys KeyResolver) *Authenticator {
	return &Authenticator{
		jwtService: jwtService,
		keys:       keys,
	}
}

// Middleware authenticates a request from either the Authorization
// bearer token or the x-api-key header, JWT first.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := a.jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), AuthKey, AuthContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if plainKey := r.Header.Get("x-api-key"); plainKey != "" {
			key, err := a.keys.ResolveKey(r.Context(), plainKey)
			if err != nil || key == nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), AuthKey, AuthContext{UserID: key.UserID, Key: key})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	})
}

// RequirePermission gates a route for API-key callers. JWT callers hold
// every permission implicitly.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := FromContext(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if ac.Key != nil && !ac.Key.HasPermission(permission) {
				utils.RespondWithError(w, http.StatusForbidden, "Insufficient API key permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(AuthKey).(AuthContext)
	return ac, ok
}

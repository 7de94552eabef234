package auth

import (
	"context"
	"net/http"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/dto"
	"github.com/kudiwallet/kudiwallet/pkg/utils"
)

type Service interface {
	LoginURL() string
	AuthenticateGoogle(ctx context.Context, code string) (*domain.User, string, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// GoogleLogin godoc
//
//	@Summary		Start Google OAuth login
//	@Description	Get the Google consent URL to redirect the user to.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	dto.LoginResponseDTO
//	@Router			/auth/google [get]
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		AuthorizationURL: h.authService.LoginURL(),
	})
}

// GoogleCallback godoc
//
//	@Summary		Handle Google OAuth callback
//	@Description	Exchange the authorization code, provision the user and wallet on first login, and return a JWT.
//	@Tags			Auth
//	@Produce		json
//	@Param			code	query		string	true	"Authorization code"
//	@Success		200		{object}	dto.CallbackResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing or invalid authorization code"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Authorization code not found")
		return
	}

	user, token, err := h.authService.AuthenticateGoogle(r.Context(), code)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.CallbackResponseDTO{
		Token: token,
		User: dto.CallbackUserDTO{
			ID:       user.ID.String(),
			FullName: user.FullName,
			Email:    user.Email,
		},
	})
}

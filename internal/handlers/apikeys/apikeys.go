package apikeys

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kudiwallet/kudiwallet/internal/dto"
	"github.com/kudiwallet/kudiwallet/internal/service/apikeyservice"
	"github.com/kudiwallet/kudiwallet/pkg/auth"
	"github.com/kudiwallet/kudiwallet/pkg/utils"
)

type Service interface {
	CreateKey(ctx context.Context, userID uuid.UUID, name string, permissions []string, expiry string) (*apikeyservice.CreatedKey, error)
	RolloverKey(ctx context.Context, userID, keyID uuid.UUID, expiry string) (*apikeyservice.CreatedKey, error)
}

type APIKeyHandler struct {
	keyService Service
}

func New(keyService Service) *APIKeyHandler {
	return &APIKeyHandler{
		keyService: keyService,
	}
}

// Create godoc
//
//	@Summary		Create a new API key
//	@Description	Issue an API key with scoped permissions; the plain key is returned only once.
//	@Tags			API Keys
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateAPIKeyRequestDTO	true	"API key request payload"
//	@Success		201		{object}	dto.APIKeyResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid expiry, permission, or key limit reached"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/keys/create [post]
func (h *APIKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	// Keys cannot mint other keys; management requires a JWT session.
	if ac.Key != nil {
		utils.RespondWithError(w, http.StatusForbidden, "API key management requires a JWT")
		return
	}

	var req dto.CreateAPIKeyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.keyService.CreateKey(r.Context(), ac.UserID, req.Name, req.Permissions, req.Expiry)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidExpiry),
			errors.Is(err, apikeyservice.ErrInvalidPermission),
			errors.Is(err, apikeyservice.ErrKeyLimitExceeded):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create API key")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.APIKeyResponseDTO{
		APIKey:    created.PlainKey,
		ExpiresAt: created.ExpiresAt.Format(time.RFC3339),
	})
}

// Rollover godoc
//
//	@Summary		Rollover an expired API key
//	@Description	Reissue an expired key with a new expiry, keeping its name and permissions.
//	@Tags			API Keys
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RolloverAPIKeyRequestDTO	true	"Rollover request payload"
//	@Success		201		{object}	dto.APIKeyResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid key id, expiry, or key still active"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"API key not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/keys/rollover [post]
func (h *APIKeyHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ac.Key != nil {
		utils.RespondWithError(w, http.StatusForbidden, "API key management requires a JWT")
		return
	}

	var req dto.RolloverAPIKeyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	keyID, err := uuid.Parse(req.ExpiredKeyID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid key ID format")
		return
	}

	created, err := h.keyService.RolloverKey(r.Context(), ac.UserID, keyID, req.Expiry)
	if err != nil {
		switch {
		case errors.Is(err, apikeyservice.ErrKeyNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, auth.ErrInvalidExpiry),
			errors.Is(err, apikeyservice.ErrKeyStillActive),
			errors.Is(err, apikeyservice.ErrKeyLimitExceeded):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to rollover API key")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.APIKeyResponseDTO{
		APIKey:      created.PlainKey,
		ExpiresAt:   created.ExpiresAt.Format(time.RFC3339),
		Permissions: created.Permissions,
	})
}

package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/dto"
	"github.com/kudiwallet/kudiwallet/internal/paystack"
	"github.com/kudiwallet/kudiwallet/internal/service/walletservice"
	"github.com/kudiwallet/kudiwallet/pkg/auth"
	"github.com/kudiwallet/kudiwallet/pkg/utils"
	"github.com/kudiwallet/kudiwallet/pkg/validate"
)

type Service interface {
	InitiateDeposit(ctx context.Context, userID uuid.UUID, amount int64) (*walletservice.DepositResult, error)
	HandleWebhook(ctx context.Context, body []byte, signature string, headers http.Header) error
	GetDepositStatus(ctx context.Context, userID uuid.UUID, reference string) (*walletservice.DepositStatus, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Transfer(ctx context.Context, userID uuid.UUID, recipientWalletNumber string, amount int64) (*walletservice.TransferResult, error)
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Deposit godoc
//
//	@Summary		Initialize a deposit
//	@Description	Create a pending deposit transaction and get a Paystack authorization URL.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit request payload (amount in minor units)"
//	@Success		200		{object}	dto.DepositResponseDTO
//	@Failure		400		{object}	utils.Response	"Amount below minimum"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Failure		500		{object}	utils.Response	"Payment initialization failed"
//	@Router			/api/wallet/deposit [post]
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.walletService.InitiateDeposit(r.Context(), ac.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrAmountTooLow):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, walletservice.ErrWalletNotFound), errors.Is(err, walletservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to initialize payment")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DepositResponseDTO{
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
	})
}

// PaystackWebhook godoc
//
//	@Summary		Handle Paystack webhook
//	@Description	Verify the delivery signature and settle the referenced deposit exactly once.
//	@Tags			Wallet
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	dto.WebhookAckDTO
//	@Failure		400	{object}	utils.Response	"Missing signature or invalid payload"
//	@Failure		401	{object}	utils.Response	"Invalid signature"
//	@Failure		500	{object}	utils.Response	"Failed to process webhook event"
//	@Router			/api/wallet/paystack/webhook [post]
func (h *WalletHandler) PaystackWebhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get(paystack.SignatureHeader)
	if signature == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing signature")
		return
	}

	// The signature covers the exact raw bytes; read them before any
	// JSON parsing happens.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Can't read request body")
		return
	}

	if err := h.walletService.HandleWebhook(r.Context(), body, signature, r.Header); err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInvalidSignature):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
		case errors.Is(err, walletservice.ErrInvalidPayload):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process webhook event")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookAckDTO{Status: true})
}

// DepositStatus godoc
//
//	@Summary		Check deposit status
//	@Description	Return the deposit transaction snapshot, best-effort reconciled against Paystack.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Param			reference	path		string	true	"Deposit reference"
//	@Success		200			{object}	dto.DepositStatusResponseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Transaction not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/deposit/{reference}/status [get]
func (h *WalletHandler) DepositStatus(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	reference := chi.URLParam(r, "reference")

	status, err := h.walletService.GetDepositStatus(r.Context(), ac.UserID, reference)
	if err != nil {
		if errors.Is(err, walletservice.ErrTransactionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check transaction status")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DepositStatusResponseDTO{
		Reference:      status.Reference,
		Status:         string(status.Status),
		Amount:         status.Amount,
		PaystackStatus: status.GatewayStatus,
	})
}

// GetBalance godoc
//
//	@Summary		Get wallet balance
//	@Description	Retrieve the current wallet balance in minor currency units.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Wallet not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wallet, err := h.walletService.GetBalance(r.Context(), ac.UserID)
	if err != nil {
		if errors.Is(err, walletservice.ErrWalletNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Wallet not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
	})
}

// Transfer godoc
//
//	@Summary		Transfer funds to another wallet
//	@Description	Atomically move funds to the wallet identified by wallet number.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TransferRequestDTO	true	"Transfer request payload"
//	@Success		200		{object}	dto.TransferResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or self-transfer"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Failure		422		{object}	utils.Response	"Invalid wallet number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/transfer [post]
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.TransferRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !validate.IsWalletNumber(req.WalletNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid wallet number")
		return
	}

	result, err := h.walletService.Transfer(r.Context(), ac.UserID, req.WalletNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInvalidAmount), errors.Is(err, walletservice.ErrSelfTransfer):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, walletservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, walletservice.ErrWalletNotFound), errors.Is(err, walletservice.ErrRecipientNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Transfer failed")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.TransferResponseDTO{
		Reference: result.Reference,
		Amount:    result.Amount,
		Recipient: result.Recipient,
	})
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	List the wallet's transactions in creation order.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Wallet not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.walletService.GetTransactions(r.Context(), ac.UserID)
	if err != nil {
		if errors.Is(err, walletservice.ErrWalletNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Wallet not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve transaction history")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		item := dto.TransactionResponseDTO{
			ID:        tx.ID.String(),
			Reference: tx.Reference,
			Type:      string(tx.Type),
			Direction: string(tx.Direction),
			Amount:    tx.Amount,
			Status:    string(tx.Status),
			Extra:     tx.Extra,
			CreatedAt: tx.CreatedAt,
		}
		if tx.RelatedTxID != nil {
			item.RelatedTxID = tx.RelatedTxID.String()
		}
		response[i] = item
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

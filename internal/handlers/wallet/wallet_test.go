package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/dto"
	"github.com/kudiwallet/kudiwallet/internal/paystack"
	"github.com/kudiwallet/kudiwallet/internal/service/walletservice"
	"github.com/kudiwallet/kudiwallet/pkg/auth"
)

func NewMock(t *testing.T) (*WalletHandler, *MockService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := NewMockService(ctrl)
	return New(mockService), mockService
}

func authRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), auth.AuthKey, auth.AuthContext{UserID: userID})
	return req.WithContext(ctx)
}

func TestDeposit(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		authenticated  bool
		mockSetup      func(m *MockService)
		expectedStatus int
	}{
		{
			name:          "Successful initialization",
			body:          `{"amount":5000}`,
			authenticated: true,
			mockSetup: func(m *MockService) {
				m.EXPECT().InitiateDeposit(gomock.Any(), userID, int64(5000)).
					Return(&walletservice.DepositResult{
						Reference:        "dep_abc",
						AuthorizationURL: "https://checkout.paystack.com/abc",
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing auth context",
			body:           `{"amount":5000}`,
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid request body",
			body:           `{"amount":`,
			authenticated:  true,
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "Amount below minimum",
			body:          `{"amount":50}`,
			authenticated: true,
			mockSetup: func(m *MockService) {
				m.EXPECT().InitiateDeposit(gomock.Any(), userID, int64(50)).
					Return(nil, walletservice.ErrAmountTooLow)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "Wallet not found",
			body:          `{"amount":5000}`,
			authenticated: true,
			mockSetup: func(m *MockService) {
				m.EXPECT().InitiateDeposit(gomock.Any(), userID, int64(5000)).
					Return(nil, walletservice.ErrWalletNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:          "Gateway failure",
			body:          `{"amount":5000}`,
			authenticated: true,
			mockSetup: func(m *MockService) {
				m.EXPECT().InitiateDeposit(gomock.Any(), userID, int64(5000)).
					Return(nil, walletservice.ErrGatewayFailure)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := NewMock(t)
			tt.mockSetup(mockService)

			var req *http.Request
			if tt.authenticated {
				req = authRequest(http.MethodPost, "/api/wallet/deposit", []byte(tt.body), userID)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/api/wallet/deposit", bytes.NewReader([]byte(tt.body)))
			}
			rec := httptest.NewRecorder()

			handler.Deposit(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp dto.DepositResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "dep_abc", resp.Reference)
				assert.Equal(t, "https://checkout.paystack.com/abc", resp.AuthorizationURL)
			}
		})
	}
}

func TestPaystackWebhook(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"dep_abc","amount":5000,"status":"success"}}`)

	tests := []struct {
		name           string
		signature      string
		mockSetup      func(m *MockService)
		expectedStatus int
	}{
		{
			name:      "Acknowledged event",
			signature: "validsig",
			mockSetup: func(m *MockService) {
				m.EXPECT().HandleWebhook(gomock.Any(), body, "validsig", gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing signature header",
			signature:      "",
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "Forged signature",
			signature: "forged",
			mockSetup: func(m *MockService) {
				m.EXPECT().HandleWebhook(gomock.Any(), body, "forged", gomock.Any()).
					Return(walletservice.ErrInvalidSignature)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:      "Invalid payload",
			signature: "validsig",
			mockSetup: func(m *MockService) {
				m.EXPECT().HandleWebhook(gomock.Any(), body, "validsig", gomock.Any()).
					Return(walletservice.ErrInvalidPayload)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "Settlement failure",
			signature: "validsig",
			mockSetup: func(m *MockService) {
				m.EXPECT().HandleWebhook(gomock.Any(), body, "validsig", gomock.Any()).
					Return(errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := NewMock(t)
			tt.mockSetup(mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/wallet/paystack/webhook", bytes.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(paystack.SignatureHeader, tt.signature)
			}
			rec := httptest.NewRecorder()

			handler.PaystackWebhook(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var ack dto.WebhookAckDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
				assert.True(t, ack.Status)
			}
		})
	}
}

func TestDepositStatus(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		reference      string
		mockSetup      func(m *MockService)
		expectedStatus int
	}{
		{
			name:      "Settled deposit",
			reference: "dep_abc",
			mockSetup: func(m *MockService) {
				m.EXPECT().GetDepositStatus(gomock.Any(), userID, "dep_abc").
					Return(&walletservice.DepositStatus{
						Reference:     "dep_abc",
						Status:        domain.TransactionStatusSuccess,
						Amount:        5000,
						GatewayStatus: "success",
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "Unknown reference",
			reference: "dep_nope",
			mockSetup: func(m *MockService) {
				m.EXPECT().GetDepositStatus(gomock.Any(), userID, "dep_nope").
					Return(nil, walletservice.ErrTransactionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:      "Lookup failure",
			reference: "dep_abc",
			mockSetup: func(m *MockService) {
				m.EXPECT().GetDepositStatus(gomock.Any(), userID, "dep_abc").
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := NewMock(t)
			tt.mockSetup(mockService)

			req := authRequest(http.MethodGet, "/api/wallet/deposit/"+tt.reference+"/status", nil, userID)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("reference", tt.reference)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.DepositStatus(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp dto.DepositStatusResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "dep_abc", resp.Reference)
				assert.Equal(t, "success", resp.Status)
				assert.Equal(t, int64(5000), resp.Amount)
				assert.Equal(t, "success", resp.PaystackStatus)
			}
		})
	}
}

func TestGetBalanceHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		mockSetup      func(m *MockService)
		expectedStatus int
	}{
		{
			name: "Returns balance",
			mockSetup: func(m *MockService) {
				m.EXPECT().GetBalance(gomock.Any(), userID).
					Return(&domain.Wallet{Balance: 150000, Currency: "NGN"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wallet not found",
			mockSetup: func(m *MockService) {
				m.EXPECT().GetBalance(gomock.Any(), userID).
					Return(nil, walletservice.ErrWalletNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Lookup failure",
			mockSetup: func(m *MockService) {
				m.EXPECT().GetBalance(gomock.Any(), userID).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := NewMock(t)
			tt.mockSetup(mockService)

			req := authRequest(http.MethodGet, "/api/wallet/balance", nil, userID)
			rec := httptest.NewRecorder()

			handler.GetBalance(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp dto.BalanceResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, int64(150000), resp.Balance)
				assert.Equal(t, "NGN", resp.Currency)
			}
		})
	}
}

func TestTransferHandler(t *testing.T) {
	userID := uuid.New()
	recipient := "4929804463622139"

	tests := []struct {
		name           string
		body           string
		mockSetup      func(m *MockService)
		expectedStatus int
	}{
		{
			name: "Successful transfer",
			body: `{"wallet_number":"` + recipient + `","amount":2000}`,
			mockSetup: func(m *MockService) {
				m.EXPECT().Transfer(gomock.Any(), userID, recipient, int64(2000)).
					Return(&walletservice.TransferResult{
						Reference: "txf_abc",
						Amount:    2000,
						Recipient: recipient,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid request body",
			body:           `{"wallet_number":`,
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Wallet number fails checksum",
			body:           `{"wallet_number":"1111111111111111","amount":2000}`,
			mockSetup:      func(m *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "Non-positive amount",
			body: `{"wallet_number":"` + recipient + `","amount":0}`,
			mockSetup: func(m *MockService) {
				m.EXPECT().Transfer(gomock.Any(), userID, recipient, int64(0)).
					Return(nil, walletservice.ErrInvalidAmount)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Self transfer",
			body: `{"wallet_number":"` + recipient + `","amount":2000}`,
			mockSetup: func(m *MockService) {
				m.EXPECT().Transfer(gomock.Any(), userID, recipient, int64(2000)).
					Return(nil, walletservice.ErrSelfTransfer)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Insufficient balance",
			body: `{"wallet_number":"` + recipient + `","amount":2000}`,
			mockSetup: func(m *MockService) {
				m.EXPECT().Transfer(gomock.Any(), userID, recipient, int64(2000)).
					Return(nil, walletservice.ErrInsufficientBalance)
			},
			expectedStatus: http.StatusPaymentRequired,
		},
		{
			name: "Recipient not found",
			body: `{"wallet_number":"` + recipient + `","amount":2000}`,
			mockSetup: func(m *MockService) {
				m.EXPECT().Transfer(gomock.Any(), userID, recipient, int64(2000)).
					Return(nil, walletservice.ErrRecipientNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Transfer failure",
			body: `{"wallet_number":"` + recipient + `","amount":2000}`,
			mockSetup: func(m *MockService) {
				m.EXPECT().Transfer(gomock.Any(), userID, recipient, int64(2000)).
					Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := NewMock(t)
			tt.mockSetup(mockService)

			req := authRequest(http.MethodPost, "/api/wallet/transfer", []byte(tt.body), userID)
			rec := httptest.NewRecorder()

			handler.Transfer(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp dto.TransferResponseDTO
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "txf_abc", resp.Reference)
				assert.Equal(t, int64(2000), resp.Amount)
				assert.Equal(t, recipient, resp.Recipient)
			}
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	userID := uuid.New()
	debitID := uuid.New()
	creditID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Returns history with related transaction links", func(t *testing.T) {
		handler, mockService := NewMock(t)
		mockService.EXPECT().GetTransactions(gomock.Any(), userID).Return([]domain.Transaction{
			{
				ID:        uuid.New(),
				Reference: "dep_abc",
				Type:      domain.TransactionTypeDeposit,
				Direction: domain.TransactionDirectionCredit,
				Amount:    5000,
				Status:    domain.TransactionStatusSuccess,
				CreatedAt: now,
			},
			{
				ID:          debitID,
				Reference:   "txf_abc_debit",
				Type:        domain.TransactionTypeTransfer,
				Direction:   domain.TransactionDirectionDebit,
				Amount:      2000,
				Status:      domain.TransactionStatusSuccess,
				RelatedTxID: &creditID,
				CreatedAt:   now,
			},
		}, nil)

		req := authRequest(http.MethodGet, "/api/wallet/transactions", nil, userID)
		rec := httptest.NewRecorder()

		handler.GetTransactions(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.TransactionResponseDTO
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "dep_abc", resp[0].Reference)
		assert.Empty(t, resp[0].RelatedTxID)
		assert.Equal(t, "txf_abc_debit", resp[1].Reference)
		assert.Equal(t, creditID.String(), resp[1].RelatedTxID)
	})

	t.Run("Wallet not found", func(t *testing.T) {
		handler, mockService := NewMock(t)
		mockService.EXPECT().GetTransactions(gomock.Any(), userID).
			Return(nil, walletservice.ErrWalletNotFound)

		req := authRequest(http.MethodGet, "/api/wallet/transactions", nil, userID)
		rec := httptest.NewRecorder()

		handler.GetTransactions(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("History failure", func(t *testing.T) {
		handler, mockService := NewMock(t)
		mockService.EXPECT().GetTransactions(gomock.Any(), userID).
			Return(nil, errors.New("db down"))

		req := authRequest(http.MethodGet, "/api/wallet/transactions", nil, userID)
		rec := httptest.NewRecorder()

		handler.GetTransactions(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

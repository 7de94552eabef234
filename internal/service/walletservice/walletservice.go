package walletservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/config"
	"github.com/kudiwallet/kudiwallet/internal/domain"
	"github.com/kudiwallet/kudiwallet/internal/paystack"
	"github.com/kudiwallet/kudiwallet/internal/pg"
)

type WalletRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByWalletNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	Credit(ctx context.Context, id uuid.UUID, amount int64) error
	Debit(ctx context.Context, id uuid.UUID, amount int64) (bool, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	GetByReferenceAndUser(ctx context.Context, reference string, userID uuid.UUID) (*domain.Transaction, error)
	ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
	MarkSettled(ctx context.Context, reference string, extra json.RawMessage) (*domain.Transaction, error)
	MarkFailed(ctx context.Context, reference string, extra json.RawMessage) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransactionStatus) error
	SetRelated(ctx context.Context, id, relatedTxID uuid.UUID) error
}

type WebhookRepo interface {
	Create(ctx context.Context, webhook *domain.Webhook) (*domain.Webhook, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Gateway interface {
	InitiateCharge(ctx context.Context, email string, amount int64, reference string) (*paystack.InitiateResponse, error)
	VerifyCharge(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
	VerifyWebhookSignature(body []byte, signature string) bool
}

var (
	ErrAmountTooLow        = errors.New("deposit amount below minimum")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrRecipientNotFound   = errors.New("recipient wallet not found")
	ErrSelfTransfer        = errors.New("cannot transfer to self")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrInvalidPayload      = errors.New("invalid webhook payload")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGatewayFailure      = errors.New("payment gateway failure")
)

const chargeSuccessEvent = "charge.success"

type DepositResult struct {
	Reference        string
	AuthorizationURL string
}

type TransferResult struct {
	Reference string
	Amount    int64
	Recipient string
}

type DepositStatus struct {
	Reference     string
	Status        domain.TransactionStatus
	Amount        int64
	GatewayStatus string
}

// Service is the settlement engine: it owns every wallet mutation and
// enforces the ledger invariants (non-negative balances, exactly-once
// settlement, all-or-nothing transfers).
type Service struct {
	walletRepo      WalletRepo
	transactionRepo TransactionRepo
	webhookRepo     WebhookRepo
	userRepo        UserRepo
	gateway         Gateway
	txManager       pg.TXManager
	minDeposit      int64
}

func New(cfg *config.Config, walletRepo WalletRepo, transactionRepo TransactionRepo, webhookRepo WebhookRepo, userRepo UserRepo, gateway Gateway, txManager pg.TXManager) *Service {
	return &Service{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		webhookRepo:     webhookRepo,
		userRepo:        userRepo,
		gateway:         gateway,
		txManager:       txManager,
		minDeposit:      cfg.MinDepositMinor,
	}
}

func newReference(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// InitiateDeposit creates a pending deposit transaction and asks the
// gateway for a charge. The pending row is committed before the gateway
// call so a webhook racing the HTTP response can already find it; on
// gateway failure the row is marked failed and kept as an audit trail.
func (s *Service) InitiateDeposit(ctx context.Context, userID uuid.UUID, amount int64) (*DepositResult, error) {
	if amount < s.minDeposit {
		return nil, fmt.Errorf("%w: minimum is %d", ErrAmountTooLow, s.minDeposit)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	reference := newReference("dep")
	transaction := &domain.Transaction{
		ID:        uuid.New(),
		Reference: reference,
		WalletID:  wallet.ID,
		UserID:    userID,
		Type:      domain.TransactionTypeDeposit,
		Direction: domain.TransactionDirectionCredit,
		Amount:    amount,
		Status:    domain.TransactionStatusPending,
	}
	if _, err := s.transactionRepo.Create(ctx, transaction); err != nil {
		zap.L().Error("can't create pending deposit", zap.Error(err))
		return nil, err
	}
	zap.L().Info("pending deposit created", zap.String("reference", reference), zap.Int64("amount", amount))

	resp, err := s.gateway.InitiateCharge(ctx, user.Email, amount, reference)
	if err != nil || !resp.Status {
		if updErr := s.transactionRepo.UpdateStatus(ctx, transaction.ID, domain.TransactionStatusFailed); updErr != nil {
			zap.L().Error("can't mark deposit failed", zap.String("reference", reference), zap.Error(updErr))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
		}
		zap.L().Error("gateway rejected charge initiation", zap.String("reference", reference), zap.String("message", resp.Message))
		return nil, ErrGatewayFailure
	}

	return &DepositResult{
		Reference:        reference,
		AuthorizationURL: resp.Data.AuthorizationURL,
	}, nil
}

// HandleWebhook settles a gateway delivery. Signature failures are
// rejected before anything is written. Every verified delivery gets an
// audit record; the record stays unprocessed when handling fails, so
// the expected redelivery can be reconciled against it.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string, headers http.Header) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		zap.L().Warn("webhook signature verification failed")
		return ErrInvalidSignature
	}

	event, err := paystack.ParseWebhookEvent(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	headersJSON, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	hook := &domain.Webhook{
		ID:       uuid.New(),
		Provider: "paystack",
		Payload:  body,
		Headers:  headersJSON,
	}
	if _, err := s.webhookRepo.Create(ctx, hook); err != nil {
		return err
	}

	if err := s.processEvent(ctx, event); err != nil {
		zap.L().Error("webhook event processing failed", zap.String("event", event.Event), zap.Error(err))
		return err
	}

	return s.webhookRepo.MarkProcessed(ctx, hook.ID)
}

func (s *Service) processEvent(ctx context.Context, event *paystack.WebhookEvent) error {
	if event.Event != chargeSuccessEvent {
		zap.L().Info("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}
	if event.Data.Reference == "" {
		zap.L().Warn("charge.success event missing reference")
		return nil
	}
	return s.settle(ctx, event.Data.Reference, event.Data.Status, event.Raw)
}

// settle applies one terminal outcome to a pending deposit, atomically
// with the wallet credit. Unknown references and already-settled
// transactions are acknowledged without mutation, which is what makes
// gateway redelivery safe.
func (s *Service) settle(ctx context.Context, reference, gatewayStatus string, extra json.RawMessage) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		transaction, err := s.transactionRepo.GetByReference(ctx, reference)
		if err != nil {
			return err
		}
		if transaction == nil {
			zap.L().Warn("no transaction for webhook reference", zap.String("reference", reference))
			return nil
		}
		if transaction.Status == domain.TransactionStatusSuccess {
			zap.L().Info("transaction already settled", zap.String("reference", reference))
			return nil
		}

		switch gatewayStatus {
		case "success":
			settled, err := s.transactionRepo.MarkSettled(ctx, reference, extra)
			if err != nil {
				return err
			}
			if settled == nil {
				// Lost the race against a concurrent delivery.
				zap.L().Info("transaction settled concurrently", zap.String("reference", reference))
				return nil
			}
			if err := s.walletRepo.Credit(ctx, settled.WalletID, settled.Amount); err != nil {
				return err
			}
			zap.L().Info("wallet credited",
				zap.String("reference", reference),
				zap.String("wallet_id", settled.WalletID.String()),
				zap.Int64("amount", settled.Amount))
			return nil
		case "failed":
			// Conditional on pending, like MarkSettled: a failed delivery
			// racing a concurrent success must not overwrite the terminal
			// status of an already credited deposit.
			failed, err := s.transactionRepo.MarkFailed(ctx, reference, extra)
			if err != nil {
				return err
			}
			if failed == nil {
				zap.L().Info("transaction no longer pending, failed event ignored", zap.String("reference", reference))
				return nil
			}
			zap.L().Warn("gateway reports charge failed", zap.String("reference", reference))
			return nil
		default:
			zap.L().Info("gateway status not terminal, transaction stays pending",
				zap.String("reference", reference), zap.String("status", gatewayStatus))
			return nil
		}
	})
}

// ReconcileDeposit verifies a pending deposit against the gateway and
// settles it through the same idempotent path the webhook uses.
func (s *Service) ReconcileDeposit(ctx context.Context, reference string) error {
	resp, err := s.gateway.VerifyCharge(ctx, reference)
	if err != nil {
		return err
	}
	extra, err := json.Marshal(resp.Data)
	if err != nil {
		return err
	}
	return s.settle(ctx, reference, resp.Data.Status, extra)
}

// Transfer moves amount between two wallets as one atomic unit: both
// legs and both balance updates commit together or not at all. Wallets
// are locked in id order so two crossing transfers cannot deadlock.
func (s *Service) Transfer(ctx context.Context, userID uuid.UUID, recipientWalletNumber string, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	sender, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrWalletNotFound
	}
	if sender.Balance < amount {
		return nil, ErrInsufficientBalance
	}

	recipient, err := s.walletRepo.GetByWalletNumber(ctx, recipientWalletNumber)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}
	if recipient.ID == sender.ID {
		return nil, ErrSelfTransfer
	}

	reference := newReference("txf")

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		// Lock both wallets in id order, then re-check the balance on
		// the locked row: the pre-check above may be stale.
		first, second := sender.ID, recipient.ID
		if bytes.Compare(second[:], first[:]) < 0 {
			first, second = second, first
		}
		for _, id := range []uuid.UUID{first, second} {
			locked, err := s.walletRepo.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if locked == nil {
				return ErrWalletNotFound
			}
			if id == sender.ID && locked.Balance < amount {
				return ErrInsufficientBalance
			}
		}

		debitExtra, _ := json.Marshal(map[string]string{"recipient_wallet": recipient.WalletNumber})
		debitTx := &domain.Transaction{
			ID:        uuid.New(),
			Reference: reference + "_debit",
			WalletID:  sender.ID,
			UserID:    userID,
			Type:      domain.TransactionTypeTransfer,
			Direction: domain.TransactionDirectionDebit,
			Amount:    amount,
			Status:    domain.TransactionStatusSuccess,
			Extra:     debitExtra,
		}
		if _, err := s.transactionRepo.Create(ctx, debitTx); err != nil {
			return err
		}

		// The credit leg needs the debit leg's id, hence the ordering;
		// both inserts still commit in the same unit.
		creditExtra, _ := json.Marshal(map[string]string{"sender_wallet": sender.WalletNumber})
		creditTx := &domain.Transaction{
			ID:          uuid.New(),
			Reference:   reference + "_credit",
			WalletID:    recipient.ID,
			UserID:      recipient.UserID,
			Type:        domain.TransactionTypeTransfer,
			Direction:   domain.TransactionDirectionCredit,
			Amount:      amount,
			Status:      domain.TransactionStatusSuccess,
			Extra:       creditExtra,
			RelatedTxID: &debitTx.ID,
		}
		if _, err := s.transactionRepo.Create(ctx, creditTx); err != nil {
			return err
		}
		if err := s.transactionRepo.SetRelated(ctx, debitTx.ID, creditTx.ID); err != nil {
			return err
		}

		debited, err := s.walletRepo.Debit(ctx, sender.ID, amount)
		if err != nil {
			return err
		}
		if !debited {
			return ErrInsufficientBalance
		}
		return s.walletRepo.Credit(ctx, recipient.ID, amount)
	})
	if err != nil {
		zap.L().Error("transfer failed", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}

	zap.L().Info("transfer completed",
		zap.String("reference", reference),
		zap.String("from", sender.WalletNumber),
		zap.String("to", recipient.WalletNumber),
		zap.Int64("amount", amount))

	return &TransferResult{
		Reference: reference,
		Amount:    amount,
		Recipient: recipient.WalletNumber,
	}, nil
}

func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return s.transactionRepo.ListByWalletID(ctx, wallet.ID)
}

// GetDepositStatus returns the local transaction snapshot, best-effort
// reconciled against a live gateway verify. A gateway failure degrades
// to the local view instead of failing the call.
func (s *Service) GetDepositStatus(ctx context.Context, userID uuid.UUID, reference string) (*DepositStatus, error) {
	transaction, err := s.transactionRepo.GetByReferenceAndUser(ctx, reference, userID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}

	status := &DepositStatus{
		Reference: reference,
		Status:    transaction.Status,
		Amount:    transaction.Amount,
	}
	if resp, err := s.gateway.VerifyCharge(ctx, reference); err != nil {
		zap.L().Warn("gateway verify failed, returning local status",
			zap.String("reference", reference), zap.Error(err))
	} else {
		status.GatewayStatus = resp.Data.Status
	}
	return status, nil
}

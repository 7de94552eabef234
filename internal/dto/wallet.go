package dto

import (
	"encoding/json"
	"time"
)

type DepositRequestDTO struct {
	Amount int64 `json:"amount" example:"5000"`
}

type DepositResponseDTO struct {
	Reference        string `json:"reference" example:"dep_9f86d081884c7d65"`
	AuthorizationURL string `json:"authorization_url"`
}

type DepositStatusResponseDTO struct {
	Reference      string `json:"reference" example:"dep_9f86d081884c7d65"`
	Status         string `json:"status" example:"success"`
	Amount         int64  `json:"amount" example:"5000"`
	PaystackStatus string `json:"paystack_status,omitempty" example:"success"`
}

type BalanceResponseDTO struct {
	Balance  int64  `json:"balance" example:"150000"`
	Currency string `json:"currency" example:"NGN"`
}

type TransferRequestDTO struct {
	WalletNumber string `json:"wallet_number" example:"4929804463622139"`
	Amount       int64  `json:"amount" example:"2000"`
}

type TransferResponseDTO struct {
	Reference string `json:"reference" example:"txf_9f86d081884c7d65"`
	Amount    int64  `json:"amount" example:"2000"`
	Recipient string `json:"recipient" example:"4929804463622139"`
}

type TransactionResponseDTO struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Type        string          `json:"type" example:"transfer"`
	Direction   string          `json:"direction" example:"debit"`
	Amount      int64           `json:"amount" example:"2000"`
	Status      string          `json:"status" example:"success"`
	RelatedTxID string          `json:"related_tx_id,omitempty"`
	Extra       json.RawMessage `json:"extra,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type WebhookAckDTO struct {
	Status bool `json:"status"`
}

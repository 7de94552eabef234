package dto

type CreateAPIKeyRequestDTO struct {
	Name        string   `json:"name" example:"ops-bot"`
	Permissions []string `json:"permissions" example:"deposit,read"`
	Expiry      string   `json:"expiry" example:"1M"`
}

type RolloverAPIKeyRequestDTO struct {
	ExpiredKeyID string `json:"expired_key_id"`
	Expiry       string `json:"expiry" example:"1M"`
}

type APIKeyResponseDTO struct {
	APIKey      string   `json:"api_key"`
	ExpiresAt   string   `json:"expires_at"`
	Permissions []string `json:"permissions,omitempty"`
}

package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kudiwallet/kudiwallet/internal/config"
)

const SignatureHeader = "x-paystack-signature"

type HTTPClientI interface {
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
	PostJSON(ctx context.Context, url string, headers http.Header, payload any) (statusCode int, respBody []byte, err error)
}

type InitiateResponse struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Data    InitiateData `json:"data"`
}

type InitiateData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyResponse struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

type VerifyData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// WebhookEvent is the parsed shape of an inbound delivery. Data carries
// the raw event object too, so settlement can attach it to the
// transaction untouched.
type WebhookEvent struct {
	Event string          `json:"event"`
	Data  WebhookData     `json:"data"`
	Raw   json.RawMessage `json:"-"`
}

type WebhookData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("can't parse webhook payload: %w", err)
	}
	event := &WebhookEvent{Event: envelope.Event, Raw: envelope.Data}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &event.Data); err != nil {
			return nil, fmt.Errorf("can't parse webhook data: %w", err)
		}
	}
	return event, nil
}

type Client struct {
	baseURL   string
	secretKey string
	client    HTTPClientI
}

func New(cfg *config.Config, client HTTPClientI) *Client {
	return &Client{
		baseURL:   cfg.PaystackBaseURL,
		secretKey: cfg.PaystackSecretKey,
		client:    client,
	}
}

func (c *Client) authHeader() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.secretKey)
	return h
}

// InitiateCharge asks Paystack for a new charge tagged with reference.
// Amount is in minor units. Single bounded attempt, no retry.
func (c *Client) InitiateCharge(ctx context.Context, email string, amount int64, reference string) (*InitiateResponse, error) {
	payload := map[string]any{
		"email":     email,
		"amount":    amount,
		"reference": reference,
	}

	statusCode, body, err := c.client.PostJSON(ctx, c.baseURL+"/transaction/initialize", c.authHeader(), payload)
	if err != nil {
		zap.L().Error("paystack initialize request failed", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack initialize returned status %d", statusCode)
	}

	var resp InitiateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("can't parse initialize response: %w", err)
	}
	return &resp, nil
}

func (c *Client) VerifyCharge(ctx context.Context, reference string) (*VerifyResponse, error) {
	statusCode, body, _, err := c.client.Get(ctx, c.baseURL+"/transaction/verify/"+reference, c.authHeader())
	if err != nil {
		zap.L().Error("paystack verify request failed", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack verify returned status %d", statusCode)
	}

	var resp VerifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("can't parse verify response: %w", err)
	}
	return &resp, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 of the exact raw request
// body against the signature header, in constant time.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(computed), []byte(signature)) == 1
}

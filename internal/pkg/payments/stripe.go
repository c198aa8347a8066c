package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/civitax/CiviTax/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeClient talks to the payment gateway's payment-intent API. The base
// URL and HTTP client are configurable so tests can point it at a local
// httptest server.
type StripeClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

// Intent is the gateway-side staging object for an authorized-but-unconfirmed
// charge. The client secret is handed to the caller, who confirms the charge
// directly with the gateway.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// CreateIntentParams describes a charge to stage at the gateway. AmountMinor
// is in the gateway's minor currency unit (cents).
type CreateIntentParams struct {
	AmountMinor    int64
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

// NewStripeClientFromEnv builds a gateway client from environment variables.
func NewStripeClientFromEnv() *StripeClient {
	return &StripeClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePaymentIntent stages a charge at the gateway and returns the intent.
// The idempotency key guarantees that a retried call cannot create a second
// gateway-side charge.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}
	if params.AmountMinor <= 0 {
		return nil, errors.New("amount must be positive")
	}
	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.AmountMinor, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	endpoint := strings.TrimRight(c.APIBaseURL, "/") + "/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if params.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", params.IdempotencyKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway create intent failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out Intent
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("gateway response parse failed: %w", err)
	}
	if out.ID == "" || out.ClientSecret == "" {
		return nil, errors.New("gateway response missing intent id or client secret")
	}
	return &out, nil
}

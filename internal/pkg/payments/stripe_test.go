package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *StripeClient {
	return &StripeClient{
		SecretKey:  "sk_test_123",
		APIBaseURL: srv.URL,
		HTTPClient: srv.Client(),
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		require.Equal(t, "idem-key-1", r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "850000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "user-1", r.PostForm.Get("metadata[user_id]"))
		assert.Equal(t, "income_tax", r.PostForm.Get("metadata[payment_type]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","amount":850000,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	intent, err := client.CreatePaymentIntent(context.Background(), CreateIntentParams{
		AmountMinor: 850000,
		Metadata: map[string]string{
			"user_id":      "user-1",
			"payment_type": "income_tax",
		},
		IdempotencyKey: "idem-key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, int64(850000), intent.Amount)
}

func TestCreatePaymentIntentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountMinor: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=402")
}

func TestCreatePaymentIntentRejectsMissingConfig(t *testing.T) {
	client := &StripeClient{HTTPClient: http.DefaultClient}
	_, err := client.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountMinor: 100})
	require.Error(t, err)

	client.SecretKey = "sk_test"
	_, err = client.CreatePaymentIntent(context.Background(), CreateIntentParams{AmountMinor: 0})
	require.Error(t, err)
}

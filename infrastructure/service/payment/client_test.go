package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1000", r.PostFormValue("amount"))
		assert.Equal(t, "usd", r.PostFormValue("currency"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","amount":1000,"currency":"usd"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test", "whsec_test", srv.URL, logger.Noop())

	intent, err := c.CreatePaymentIntent(context.Background(), 1000, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, int64(1000), intent.Amount)
}

func TestCreatePaymentIntent_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test", "whsec_test", srv.URL, logger.Noop())

	_, err := c.CreatePaymentIntent(context.Background(), 1000, "usd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
}

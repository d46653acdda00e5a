package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

func signPayload(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := NewClient("sk_test", "whsec_test", "https://api.example.com", logger.Noop())
	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	now := time.Now().Unix()

	t.Run("valid signature", func(t *testing.T) {
		header := signPayload("whsec_test", now, payload)
		assert.NoError(t, c.VerifyWebhookSignature(payload, header))
	})

	t.Run("missing header", func(t *testing.T) {
		assert.ErrorIs(t, c.VerifyWebhookSignature(payload, ""), ErrMissingSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := signPayload("whsec_other", now, payload)
		assert.ErrorIs(t, c.VerifyWebhookSignature(payload, header), ErrBadSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signPayload("whsec_test", now, payload)
		tampered := []byte(`{"type":"payment_intent.succeeded","amount":0}`)
		assert.ErrorIs(t, c.VerifyWebhookSignature(tampered, header), ErrBadSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		old := time.Now().Add(-time.Hour).Unix()
		header := signPayload("whsec_test", old, payload)
		assert.ErrorIs(t, c.VerifyWebhookSignature(payload, header), ErrStaleTimestamp)
	})

	t.Run("garbage header", func(t *testing.T) {
		assert.ErrorIs(t, c.VerifyWebhookSignature(payload, "v1=zzzz"), ErrBadSignature)
	})
}

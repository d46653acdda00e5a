package outbound

import "context"

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
	// VerifyWebhookSignature checks the gateway's signature header over the
	// raw payload.
	VerifyWebhookSignature(payload []byte, signatureHeader string) error
}

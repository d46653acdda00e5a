package inbound

import "context"

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentUseCase interface {
	// CreatePaymentIntent is restricted to accounts with the customer role.
	CreatePaymentIntent(ctx context.Context, role string, amount int64) (*CreatePaymentIntentResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

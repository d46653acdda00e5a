package payment

import (
	"context"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

const defaultCurrency = "usd"

type UseCase struct {
	gateway outbound.PaymentGateway
	log     logger.Logger
}

func NewUseCase(gateway outbound.PaymentGateway, log logger.Logger) inbound.PaymentUseCase {
	return &UseCase{gateway: gateway, log: log}
}

func (uc *UseCase) CreatePaymentIntent(ctx context.Context, role string, amount int64) (*inbound.CreatePaymentIntentResponse, error) {
	if role != entity.RoleCustomer {
		return nil, apperror.Forbidden("Only customers can make payments")
	}
	if amount <= 0 {
		return nil, apperror.Validation("Amount must be positive")
	}

	intent, err := uc.gateway.CreatePaymentIntent(ctx, amount, defaultCurrency)
	if err != nil {
		return nil, apperror.Upstream("payment service", err)
	}

	return &inbound.CreatePaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

func (uc *UseCase) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := uc.gateway.VerifyWebhookSignature(payload, signatureHeader); err != nil {
		uc.log.Warn(ctx, "webhook signature rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return apperror.Validation("Webhook signature verification failed")
	}

	// Event payloads are acknowledged and logged; fulfillment is driven
	// elsewhere.
	uc.log.Info(ctx, "webhook event accepted", map[string]interface{}{
		"payload_bytes": len(payload),
	})
	return nil
}

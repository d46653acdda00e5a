package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/infrastructure/http/middleware"
	"github.com/shopcore/shopcore/infrastructure/http/response"
)

// SignatureHeader carries the payment gateway's webhook signature.
const SignatureHeader = "Stripe-Signature"

// maxWebhookBody bounds how much of a webhook payload is read.
const maxWebhookBody = 1 << 20 // 1 MiB

type PaymentHandler struct {
	payments inbound.PaymentUseCase
}

func NewPaymentHandler(payments inbound.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		response.Unauthorized(w, "No token provided")
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.payments.CreatePaymentIntent(r.Context(), user.Role, req.Amount)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", res)
}

// Webhook reads the raw body; signature verification happens over the exact
// bytes the gateway signed.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "Failed to read request body")
		return
	}

	if err := h.payments.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", map[string]bool{"received": true})
}

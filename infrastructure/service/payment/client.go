package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// Client talks to a Stripe-compatible payment API. Requests are form-encoded
// POSTs authorized with the secret key; only the payment-intent surface this
// service needs is covered.
type Client struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
	log           logger.Logger
}

func NewClient(secretKey, webhookSecret, baseURL string, log logger.Logger) *Client {
	return &Client{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		log:           log,
	}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*outbound.PaymentIntent, error) {
	data := url.Values{}
	data.Set("amount", strconv.FormatInt(amount, 10))
	data.Set("currency", currency)
	data.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error(ctx, "payment intent request failed", err, map[string]interface{}{
			"amount": amount,
		})
		return nil, fmt.Errorf("payment service unavailable: %w", err)
	}
	defer resp.Body.Close()

	var result intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	if resp.StatusCode >= 400 || result.Error != nil {
		msg := "unknown error"
		if result.Error != nil {
			msg = result.Error.Message
		}
		c.log.Warn(ctx, "payment intent rejected", map[string]interface{}{
			"status": resp.StatusCode,
			"error":  msg,
		})
		return nil, fmt.Errorf("payment intent rejected: %s", msg)
	}

	c.log.Info(ctx, "payment intent created", map[string]interface{}{
		"intent_id": result.ID,
		"amount":    result.Amount,
		"currency":  result.Currency,
	})

	return &outbound.PaymentIntent{
		ID:           result.ID,
		ClientSecret: result.ClientSecret,
		Amount:       result.Amount,
		Currency:     result.Currency,
	}, nil
}

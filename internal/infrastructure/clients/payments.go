package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"promobook/internal/domain/bookings"
)

// PaymentsClient charges the payment gateway. Transport-level calls run
// behind a circuit breaker so a dead gateway fails fast instead of holding
// every saga on a timeout.
type PaymentsClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewPaymentsClient(baseURL string, httpClient *http.Client) *PaymentsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &PaymentsClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "payment-gateway",
		}),
	}
}

type chargeRequestBody struct {
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	IdempotencyKey string          `json:"idempotency_key"`
}

type chargeResponseBody struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

func (c *PaymentsClient) Charge(ctx context.Context, req bookings.ChargeRequest) (*bookings.Payment, error) {
	body, err := json.Marshal(chargeRequestBody{
		Amount:         req.Amount,
		Currency:       req.Currency,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal charge request: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("error charging payment: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %v", resp.StatusCode)
		}

		var chargeResp chargeResponseBody
		if err := json.NewDecoder(resp.Body).Decode(&chargeResp); err != nil {
			return nil, fmt.Errorf("decode charge response: %w", err)
		}

		return &chargeResp, nil
	})
	if err != nil {
		return nil, err
	}

	chargeResp := result.(*chargeResponseBody)

	payment := &bookings.Payment{
		Reference: chargeResp.Reference,
		Status:    chargeResp.Status,
		Amount:    chargeResp.Amount,
		Currency:  chargeResp.Currency,
	}

	if chargeResp.Status != bookings.PaymentStatusSucceeded {
		return payment, fmt.Errorf("charge %s has status %q: %w",
			chargeResp.Reference, chargeResp.Status, bookings.ErrPaymentDeclined)
	}

	return payment, nil
}

package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"promobook/internal/domain/bookings"
)

// EmailClient talks to the templated email service. Template rendering is
// the service's business; we only post the payloads.
type EmailClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewEmailClient(baseURL string, httpClient *http.Client) *EmailClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &EmailClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *EmailClient) SendTicket(ctx context.Context, email bookings.TicketEmail) error {
	return c.post(ctx, "/emails/ticket", email)
}

func (c *EmailClient) SendBookingConfirmation(ctx context.Context, email bookings.ConfirmationEmail) error {
	return c.post(ctx, "/emails/booking-confirmation", email)
}

func (c *EmailClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status code: %v", resp.StatusCode)
	}

	return nil
}

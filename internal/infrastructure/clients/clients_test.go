package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promobook/internal/domain/bookings"
	"promobook/internal/infrastructure/clients"
)

func TestPaymentsClient_Charge(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/charges", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"reference": "ch_42",
			"status":    "succeeded",
			"amount":    "150",
			"currency":  "USD",
		})
	}))
	defer srv.Close()

	client := clients.NewPaymentsClient(srv.URL, srv.Client())

	payment, err := client.Charge(context.Background(), bookings.ChargeRequest{
		Amount:         decimal.NewFromInt(150),
		Currency:       "USD",
		IdempotencyKey: "idem-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ch_42", payment.Reference)
	assert.Equal(t, bookings.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, "idem-1", gotBody["idempotency_key"])
}

func TestPaymentsClient_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"reference": "ch_43",
			"status":    "declined",
			"amount":    "150",
			"currency":  "USD",
		})
	}))
	defer srv.Close()

	client := clients.NewPaymentsClient(srv.URL, srv.Client())

	payment, err := client.Charge(context.Background(), bookings.ChargeRequest{
		Amount:   decimal.NewFromInt(150),
		Currency: "USD",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, bookings.ErrPaymentDeclined)
	// the reference comes back even for declines, it goes into the error trail
	require.NotNil(t, payment)
	assert.Equal(t, "ch_43", payment.Reference)
}

func TestPaymentsClient_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := clients.NewPaymentsClient(srv.URL, srv.Client())

	_, err := client.Charge(context.Background(), bookings.ChargeRequest{
		Amount:   decimal.NewFromInt(10),
		Currency: "USD",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, bookings.ErrPaymentDeclined, "a gateway fault is not a decline")
}

func TestArtifactsClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/qrcodes", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "TKT-AB12CD34", body["ticket_number"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"url": "https://cdn.example.com/qr/TKT-AB12CD34.png",
		})
	}))
	defer srv.Close()

	client := clients.NewArtifactsClient(srv.URL, srv.Client())

	url, err := client.Generate(context.Background(), "TKT-AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/qr/TKT-AB12CD34.png", url)
}

func TestArtifactsClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := clients.NewArtifactsClient(srv.URL, srv.Client())

	_, err := client.Generate(context.Background(), "TKT-AB12CD34")
	assert.Error(t, err)
}

func TestEmailClient_SendTicket(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := clients.NewEmailClient(srv.URL, srv.Client())

	err := client.SendTicket(context.Background(), bookings.TicketEmail{
		To:           "user@example.com",
		TicketNumber: "TKT-AB12CD34",
	})
	require.NoError(t, err)
	assert.Equal(t, "/emails/ticket", gotPath)
}

func TestEmailClient_SendBookingConfirmation(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := clients.NewEmailClient(srv.URL, srv.Client())

	err := client.SendBookingConfirmation(context.Background(), bookings.ConfirmationEmail{
		To: "user@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "/emails/booking-confirmation", gotPath)
}

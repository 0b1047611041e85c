package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promobook/internal/domain/bookings"
	"promobook/internal/domain/notifications"
	"promobook/internal/entities"
	"promobook/internal/interfaces/events"
	"promobook/internal/interfaces/events/mocks"
)

func TestBookingConfirmedNotificationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockNotificationStore(ctrl)
	email := mocks.NewMockEmailSender(ctrl)
	h := events.NewHandler(store, email)

	event := entities.BookingConfirmed_v1{
		Header:         entities.NewEventHeader(),
		BookingID:      uuid.New(),
		UserID:         "user-1",
		PromotionTitle: "Island Hopping Weekend",
		Quantity:       2,
		TotalAmount:    entities.NewMoney(decimal.NewFromInt(200), "USD"),
	}

	var stored notifications.Notification
	store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notifications.Notification) error {
			stored = n
			return nil
		})

	err := h.BookingConfirmedNotificationHandler().Handle(context.Background(), &event)
	require.NoError(t, err)

	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, notifications.TypeBookingConfirmation, stored.Type)
	assert.Equal(t, "Booking Confirmed!", stored.Title)
	assert.Contains(t, stored.Message, "Island Hopping Weekend")
	assert.Equal(t, "/tickets", stored.LinkURL)
}

func TestBookingConfirmedNotificationHandler_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockNotificationStore(ctrl)
	email := mocks.NewMockEmailSender(ctrl)
	h := events.NewHandler(store, email)

	store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(errors.New("db down"))

	// the error propagates so the router retries the delivery
	err := h.BookingConfirmedNotificationHandler().Handle(context.Background(), &entities.BookingConfirmed_v1{
		Header: entities.NewEventHeader(),
	})
	assert.Error(t, err)
}

func TestBookingConfirmedEmailHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockNotificationStore(ctrl)
	email := mocks.NewMockEmailSender(ctrl)
	h := events.NewHandler(store, email)

	bookingID := uuid.New()
	event := entities.BookingConfirmed_v1{
		Header:         entities.NewEventHeader(),
		BookingID:      bookingID,
		UserEmail:      "user@example.com",
		UserName:       "Alex",
		PromotionTitle: "Island Hopping Weekend",
		Quantity:       2,
		TotalAmount:    entities.NewMoney(decimal.NewFromInt(200), "USD"),
	}

	var sent bookings.ConfirmationEmail
	email.EXPECT().
		SendBookingConfirmation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e bookings.ConfirmationEmail) error {
			sent = e
			return nil
		})

	err := h.BookingConfirmedEmailHandler().Handle(context.Background(), &event)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", sent.To)
	assert.Equal(t, bookingID, sent.BookingID)
	assert.Equal(t, 2, sent.Summary.Quantity)
	assert.True(t, sent.Summary.Amount.Equal(decimal.NewFromInt(200)))
}

func TestTicketBatchIssuedNotificationHandler_Grammar(t *testing.T) {
	tests := []struct {
		name    string
		issued  int
		message string
	}{
		{
			name:    "single ticket",
			issued:  1,
			message: "1 ticket for Island Hopping Weekend has been issued. You can access it in the tickets section.",
		},
		{
			name:    "several tickets",
			issued:  3,
			message: "3 tickets for Island Hopping Weekend have been issued. You can access them in the tickets section.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockNotificationStore(ctrl)
			h := events.NewHandler(store, mocks.NewMockEmailSender(ctrl))

			var stored notifications.Notification
			store.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, n notifications.Notification) error {
					stored = n
					return nil
				})

			err := h.TicketBatchIssuedNotificationHandler().Handle(context.Background(), &entities.TicketBatchIssued_v1{
				Header:         entities.NewEventHeader(),
				UserID:         "user-1",
				PromotionTitle: "Island Hopping Weekend",
				Requested:      3,
				Issued:         tt.issued,
			})
			require.NoError(t, err)

			assert.Equal(t, notifications.TypeTicketIssued, stored.Type)
			assert.Equal(t, tt.message, stored.Message)
		})
	}
}

func TestAffiliateConvertedNotificationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockNotificationStore(ctrl)
	h := events.NewHandler(store, mocks.NewMockEmailSender(ctrl))

	var stored notifications.Notification
	store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n notifications.Notification) error {
			stored = n
			return nil
		})

	err := h.AffiliateConvertedNotificationHandler().Handle(context.Background(), &entities.AffiliateConverted_v1{
		Header:          entities.NewEventHeader(),
		AffiliateUserID: "affiliate-user",
		Amount:          entities.NewMoney(decimal.NewFromInt(200), "USD"),
		Commission:      entities.NewMoney(decimal.NewFromInt(10), "USD"),
	})
	require.NoError(t, err)

	// the notification goes to the affiliate, not the buyer
	assert.Equal(t, "affiliate-user", stored.UserID)
	assert.Equal(t, notifications.TypeAffiliateConversion, stored.Type)
	assert.Equal(t, "New Affiliate Conversion!", stored.Title)
	assert.Contains(t, stored.Message, "200 USD")
	assert.Contains(t, stored.Message, "10 USD")
}

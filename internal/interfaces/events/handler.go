package events

import (
	"context"

	"promobook/internal/domain/bookings"
	"promobook/internal/domain/notifications"
)

//go:generate mockgen -destination=mocks/notification_store_mock.go -package=mocks . NotificationStore
type NotificationStore interface {
	Create(ctx context.Context, n notifications.Notification) error
}

//go:generate mockgen -destination=mocks/email_sender_mock.go -package=mocks . EmailSender
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, email bookings.ConfirmationEmail) error
}

// Handler bundles the collaborators the notification fan-out needs. Every
// handler is best effort from the saga's point of view: failures are
// retried by the router, they never fail the booking.
type Handler struct {
	notificationStore NotificationStore
	emailSender       EmailSender
}

func NewHandler(
	notificationStore NotificationStore,
	emailSender EmailSender,
) *Handler {
	return &Handler{
		notificationStore: notificationStore,
		emailSender:       emailSender,
	}
}

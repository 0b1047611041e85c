package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"promobook/internal/domain/bookings"
	"promobook/internal/domain/notifications"
	"promobook/internal/entities"
	"promobook/internal/monitoring"
)

func (h *Handler) BookingConfirmedNotificationHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"booking_confirmed_notification_handler",
		func(ctx context.Context, payload *entities.BookingConfirmed_v1) error {
			log.FromContext(ctx).Info("Storing booking confirmation notification")

			message := fmt.Sprintf("Your booking for %s has been confirmed. You can view your tickets in the tickets section.", payload.PromotionTitle)

			err := h.notificationStore.Create(ctx, notifications.Notification{
				ID:       uuid.New(),
				UserID:   payload.UserID,
				Type:     notifications.TypeBookingConfirmation,
				Title:    "Booking Confirmed!",
				Message:  message,
				LinkURL:  "/tickets",
				ImageURL: payload.CoverImageURL,
				Metadata: map[string]any{
					"booking_id":      payload.BookingID,
					"promotion_id":    payload.PromotionID,
					"promotion_title": payload.PromotionTitle,
					"quantity":        payload.Quantity,
					"total_amount":    payload.TotalAmount.Amount,
					"currency":        payload.TotalAmount.Currency,
					"travel_date":     payload.TravelDate,
				},
			})
			if err != nil {
				return fmt.Errorf("store booking confirmation notification: %w", err)
			}

			monitoring.NotificationStored(string(notifications.TypeBookingConfirmation))
			return nil
		},
	)
}

func (h *Handler) BookingConfirmedEmailHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"booking_confirmed_email_handler",
		func(ctx context.Context, payload *entities.BookingConfirmed_v1) error {
			log.FromContext(ctx).Info("Sending booking confirmation email")

			return h.emailSender.SendBookingConfirmation(ctx, bookings.ConfirmationEmail{
				To:        payload.UserEmail,
				Name:      payload.UserName,
				BookingID: payload.BookingID,
				Summary: bookings.BookingSummary{
					Title:      payload.PromotionTitle,
					TravelDate: payload.TravelDate,
					Location:   payload.Location,
					Quantity:   payload.Quantity,
					Amount:     payload.TotalAmount.Amount,
					Currency:   payload.TotalAmount.Currency,
				},
			})
		},
	)
}

func (h *Handler) TicketBatchIssuedNotificationHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"ticket_batch_issued_notification_handler",
		func(ctx context.Context, payload *entities.TicketBatchIssued_v1) error {
			log.FromContext(ctx).Info("Storing ticket issued notification")

			// The message reports how many tickets actually materialized,
			// which may be fewer than requested.
			noun := "ticket"
			verb := "has"
			pronoun := "it"
			if payload.Issued != 1 {
				noun = "tickets"
				verb = "have"
				pronoun = "them"
			}

			message := fmt.Sprintf("%d %s for %s %s been issued. You can access %s in the tickets section.", payload.Issued, noun, payload.PromotionTitle, verb, pronoun)

			err := h.notificationStore.Create(ctx, notifications.Notification{
				ID:       uuid.New(),
				UserID:   payload.UserID,
				Type:     notifications.TypeTicketIssued,
				Title:    "Tickets Issued",
				Message:  message,
				LinkURL:  "/tickets",
				ImageURL: payload.ArtifactURL,
				Metadata: map[string]any{
					"booking_id":      payload.BookingID,
					"promotion_id":    payload.PromotionID,
					"promotion_title": payload.PromotionTitle,
					"ticket_ids":      payload.TicketIDs,
					"requested":       payload.Requested,
					"issued":          payload.Issued,
				},
			})
			if err != nil {
				return fmt.Errorf("store ticket issued notification: %w", err)
			}

			monitoring.NotificationStored(string(notifications.TypeTicketIssued))
			return nil
		},
	)
}

func (h *Handler) AffiliateConvertedNotificationHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"affiliate_converted_notification_handler",
		func(ctx context.Context, payload *entities.AffiliateConverted_v1) error {
			log.FromContext(ctx).Info("Storing affiliate conversion notification")

			message := fmt.Sprintf("Someone used your affiliate link and made a purchase worth %s %s. You earned %s %s in commission!",
				payload.Amount.Amount, payload.Amount.Currency,
				payload.Commission.Amount, payload.Commission.Currency)

			err := h.notificationStore.Create(ctx, notifications.Notification{
				ID:       uuid.New(),
				UserID:   payload.AffiliateUserID,
				Type:     notifications.TypeAffiliateConversion,
				Title:    "New Affiliate Conversion!",
				Message:  message,
				LinkURL:  "/dashboard/affiliate",
				Metadata: map[string]any{
					"booking_id":      payload.BookingID,
					"promotion_id":    payload.PromotionID,
					"promotion_title": payload.PromotionTitle,
					"amount":          payload.Amount.Amount,
					"commission":      payload.Commission.Amount,
					"currency":        payload.Amount.Currency,
				},
			})
			if err != nil {
				return fmt.Errorf("store affiliate conversion notification: %w", err)
			}

			monitoring.NotificationStored(string(notifications.TypeAffiliateConversion))
			return nil
		},
	)
}

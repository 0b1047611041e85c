package app

import (
	"context"

	bdomain "promobook/internal/domain/bookings"
)

//go:generate mockgen -destination=mocks/payment_gateway_service_mock.go -package=mocks . PaymentGatewayService
type PaymentGatewayService interface {
	Charge(ctx context.Context, req bdomain.ChargeRequest) (*bdomain.Payment, error)
}

//go:generate mockgen -destination=mocks/artifact_service_mock.go -package=mocks . ArtifactService
type ArtifactService interface {
	Generate(ctx context.Context, ticketNumber string) (string, error)
}

//go:generate mockgen -destination=mocks/email_service_mock.go -package=mocks . EmailService
type EmailService interface {
	SendTicket(ctx context.Context, email bdomain.TicketEmail) error
	SendBookingConfirmation(ctx context.Context, email bdomain.ConfirmationEmail) error
}

package booking

import (
	"context"

	"github.com/google/uuid"

	adomain "promobook/internal/domain/affiliates"
	bdomain "promobook/internal/domain/bookings"
	pdomain "promobook/internal/domain/promotions"
	tdomain "promobook/internal/domain/tickets"
)

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks -source=deps.go

type PromotionsRepo interface {
	GetPromotion(ctx context.Context, id uuid.UUID) (*pdomain.Promotion, error)
	IncrementBookings(ctx context.Context, id uuid.UUID, by int) error
}

type AffiliatesRepo interface {
	GetByShortCode(ctx context.Context, code string) (*adomain.AffiliateLink, error)
}

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking bdomain.Booking) error
}

type TicketsRepo interface {
	CreateTicket(ctx context.Context, ticket tdomain.Ticket) error
}

type PaymentGateway interface {
	Charge(ctx context.Context, req bdomain.ChargeRequest) (*bdomain.Payment, error)
}

type ArtifactGenerator interface {
	Generate(ctx context.Context, ticketNumber string) (string, error)
}

type EmailSender interface {
	SendTicket(ctx context.Context, email bdomain.TicketEmail) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// TxManager is satisfied by *manager.Manager from go-transaction-manager.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

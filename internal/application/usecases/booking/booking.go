package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	adomain "promobook/internal/domain/affiliates"
	bdomain "promobook/internal/domain/bookings"
	pdomain "promobook/internal/domain/promotions"
	tdomain "promobook/internal/domain/tickets"
	"promobook/internal/entities"
	"promobook/internal/idempotency"
	"promobook/internal/monitoring"
)

const (
	defaultTicketWorkers = 4
	defaultCallTimeout   = 10 * time.Second
	maxNumberAttempts    = 3
)

type SubmitBookingRequest struct {
	UserID        string
	UserEmail     string
	UserName      string
	PromotionID   uuid.UUID
	Quantity      int
	TravelDate    time.Time
	AffiliateCode string
}

type SubmitBookingResult struct {
	Booking bdomain.Booking
	Tickets []tdomain.Ticket
}

type Deps struct {
	Promotions PromotionsRepo
	Affiliates AffiliatesRepo
	Bookings   BookingsRepo
	Tickets    TicketsRepo
	Payments   PaymentGateway
	Artifacts  ArtifactGenerator
	Email      EmailSender
	TrManager  TxManager
	// TxEventBus publishes through the outbox inside the booking
	// transaction; EventBus publishes directly to the stream.
	TxEventBus EventPublisher
	EventBus   EventPublisher

	TicketWorkers       int
	ExternalCallTimeout time.Duration
}

// SubmitBookingUsecase orchestrates the booking fulfillment saga: charge,
// persist, issue tickets, fan out notifications, account inventory.
type SubmitBookingUsecase struct {
	deps Deps
}

func NewSubmitBookingUsecase(deps Deps) *SubmitBookingUsecase {
	if deps.TicketWorkers <= 0 {
		deps.TicketWorkers = defaultTicketWorkers
	}
	if deps.ExternalCallTimeout <= 0 {
		deps.ExternalCallTimeout = defaultCallTimeout
	}

	return &SubmitBookingUsecase{deps: deps}
}

// SubmitBooking runs the saga. Nothing before the charge has external
// effect; nothing after the charge may abort the saga. The only error that
// can come back after a successful charge is *bdomain.InconsistencyError,
// raised when the booking row could not be written.
func (u *SubmitBookingUsecase) SubmitBooking(ctx context.Context, req SubmitBookingRequest) (*SubmitBookingResult, error) {
	if req.UserID == "" {
		return nil, bdomain.ErrUnauthenticated
	}
	if req.Quantity < 1 {
		return nil, bdomain.ErrInvalidQuantity
	}

	promo, err := u.deps.Promotions.GetPromotion(ctx, req.PromotionID)
	if err != nil {
		return nil, fmt.Errorf("resolve promotion: %w", err)
	}

	if !promo.HasCapacity(req.Quantity) {
		return nil, fmt.Errorf("%d of %d bookings taken, requested %d: %w",
			promo.CurrentBookings, *promo.MaxBookings, req.Quantity, pdomain.ErrCapacityExceeded)
	}

	affiliate := u.resolveAffiliate(ctx, req.AffiliateCode)

	unitPrice := promo.EffectiveUnitPrice()
	totalAmount := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	var affiliateRate *decimal.Decimal
	if affiliate != nil {
		affiliateRate = &affiliate.CommissionRate
	}
	breakdown := bdomain.CalculateCommissions(totalAmount, promo.CommissionRate, affiliateRate)

	currency := promo.CurrencyOrDefault()

	chargeCtx, cancel := context.WithTimeout(ctx, u.deps.ExternalCallTimeout)
	payment, err := u.deps.Payments.Charge(chargeCtx, bdomain.ChargeRequest{
		Amount:         totalAmount,
		Currency:       currency,
		IdempotencyKey: idempotency.GetKey(ctx),
	})
	cancel()
	if err != nil {
		if errors.Is(err, bdomain.ErrPaymentDeclined) {
			monitoring.PaymentDeclined()
		}
		return nil, fmt.Errorf("charge payment: %w", err)
	}

	// The charge went through: the rest of the saga must finish even if
	// the caller disconnects. Per-call timeouts still bound every
	// external call below.
	ctx = context.WithoutCancel(ctx)

	booking := bdomain.Booking{
		ID:                  uuid.New(),
		PromotionID:         promo.ID,
		UserID:              req.UserID,
		Quantity:            req.Quantity,
		TotalAmount:         totalAmount,
		CommissionAmount:    breakdown.CommissionAmount,
		AffiliateCommission: breakdown.AffiliateCommission,
		Currency:            currency,
		Status:              bdomain.StatusConfirmed,
		PaymentReference:    payment.Reference,
		PaymentStatus:       payment.Status,
		BookingDate:         time.Now(),
		TravelDate:          req.TravelDate,
	}
	if affiliate != nil {
		booking.AffiliateLinkID = &affiliate.ID
	}

	err = u.deps.TrManager.Do(ctx, func(ctx context.Context) error {
		if err := u.deps.Bookings.CreateBooking(ctx, booking); err != nil {
			return err
		}

		return u.deps.TxEventBus.Publish(ctx, entities.BookingConfirmed_v1{
			Header:         entities.NewEventHeaderWithIdempotencyKey(idempotency.GetKey(ctx) + booking.ID.String()),
			BookingID:      booking.ID,
			UserID:         req.UserID,
			UserEmail:      req.UserEmail,
			UserName:       req.UserName,
			PromotionID:    promo.ID,
			PromotionTitle: promo.Title,
			Location:       promo.Location,
			CoverImageURL:  promo.CoverImageURL,
			Quantity:       req.Quantity,
			TotalAmount:    entities.NewMoney(totalAmount, currency),
			TravelDate:     req.TravelDate,
		})
	})
	if err != nil {
		// Money was captured and there is no record of it. This must not
		// be silently retried or swallowed.
		monitoring.BookingInconsistency()
		log.FromContext(ctx).
			WithField("booking_id", booking.ID).
			WithField("payment_reference", payment.Reference).
			WithField("error", err).
			Error("Charge captured but booking not persisted, manual reconciliation required")

		return nil, &bdomain.InconsistencyError{
			BookingID:        booking.ID,
			PaymentReference: payment.Reference,
			Err:              err,
		}
	}

	monitoring.BookingConfirmed()

	issued := u.generateTickets(ctx, booking, promo, req)
	monitoring.TicketsIssued(len(issued))
	monitoring.TicketsFailed(req.Quantity - len(issued))

	u.publishTicketBatchIssued(ctx, booking, promo, req.Quantity, issued)

	if err := u.deps.Promotions.IncrementBookings(ctx, promo.ID, req.Quantity); err != nil {
		log.FromContext(ctx).
			WithField("promotion_id", promo.ID).
			WithField("error", err).
			Error("Failed to increment promotion bookings")
	}

	if affiliate != nil {
		u.publishAffiliateConverted(ctx, booking, promo, affiliate)
	}

	return &SubmitBookingResult{
		Booking: booking,
		Tickets: issued,
	}, nil
}

// resolveAffiliate treats every lookup problem as a miss: a stale or
// mistyped referral code never blocks a paying customer.
func (u *SubmitBookingUsecase) resolveAffiliate(ctx context.Context, code string) *adomain.AffiliateLink {
	if code == "" {
		return nil
	}

	affiliate, err := u.deps.Affiliates.GetByShortCode(ctx, code)
	if err != nil {
		log.FromContext(ctx).
			WithField("affiliate_code", code).
			WithField("error", err).
			Warn("Affiliate code did not resolve, booking proceeds without attribution")
		return nil
	}

	return affiliate
}

func (u *SubmitBookingUsecase) generateTickets(
	ctx context.Context,
	booking bdomain.Booking,
	promo *pdomain.Promotion,
	req SubmitBookingRequest,
) []tdomain.Ticket {
	var (
		mu     sync.Mutex
		issued []tdomain.Ticket
	)

	g := &errgroup.Group{}
	g.SetLimit(u.deps.TicketWorkers)

	for i := 0; i < booking.Quantity; i++ {
		g.Go(func() error {
			ticket, err := u.issueTicket(ctx, booking, promo, req)
			if err != nil {
				// One unit failing never aborts its siblings.
				log.FromContext(ctx).
					WithField("booking_id", booking.ID).
					WithField("error", err).
					Error("Failed to issue ticket")
				return nil
			}

			mu.Lock()
			issued = append(issued, *ticket)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	return issued
}

func (u *SubmitBookingUsecase) issueTicket(
	ctx context.Context,
	booking bdomain.Booking,
	promo *pdomain.Promotion,
	req SubmitBookingRequest,
) (*tdomain.Ticket, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := tdomain.NewTicketNumber()
		if err != nil {
			return nil, fmt.Errorf("generate ticket number: %w", err)
		}

		artifactCtx, cancel := context.WithTimeout(ctx, u.deps.ExternalCallTimeout)
		artifactURL, err := u.deps.Artifacts.Generate(artifactCtx, number)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("generate artifact: %w", err)
		}

		ticket := tdomain.Ticket{
			ID:           uuid.New(),
			BookingID:    booking.ID,
			UserID:       booking.UserID,
			TicketNumber: number,
			ArtifactURL:  artifactURL,
			CreatedAt:    time.Now(),
		}

		err = u.deps.Tickets.CreateTicket(ctx, ticket)
		if errors.Is(err, tdomain.ErrNumberTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("persist ticket: %w", err)
		}

		u.sendTicketEmail(ctx, ticket, promo, req)

		return &ticket, nil
	}

	return nil, fmt.Errorf("no unique ticket number after %d attempts", maxNumberAttempts)
}

// sendTicketEmail is strictly best effort: the ticket exists either way,
// the email can be resent later.
func (u *SubmitBookingUsecase) sendTicketEmail(
	ctx context.Context,
	ticket tdomain.Ticket,
	promo *pdomain.Promotion,
	req SubmitBookingRequest,
) {
	emailCtx, cancel := context.WithTimeout(ctx, u.deps.ExternalCallTimeout)
	defer cancel()

	err := u.deps.Email.SendTicket(emailCtx, bdomain.TicketEmail{
		To:           req.UserEmail,
		Name:         req.UserName,
		TicketNumber: ticket.TicketNumber,
		ArtifactURL:  ticket.ArtifactURL,
		Summary: bdomain.BookingSummary{
			Title:        promo.Title,
			TravelDate:   req.TravelDate,
			Location:     promo.Location,
			BusinessName: promo.BusinessName,
			// each ticket admits one person
			Quantity: 1,
			Amount:   promo.EffectiveUnitPrice(),
			Currency: promo.CurrencyOrDefault(),
		},
	})
	if err != nil {
		log.FromContext(ctx).
			WithField("ticket_number", ticket.TicketNumber).
			WithField("error", err).
			Warn("Ticket created, email delivery pending")
	}
}

func (u *SubmitBookingUsecase) publishTicketBatchIssued(
	ctx context.Context,
	booking bdomain.Booking,
	promo *pdomain.Promotion,
	requested int,
	issued []tdomain.Ticket,
) {
	ticketIDs := make([]uuid.UUID, 0, len(issued))
	artifactURL := ""
	for _, t := range issued {
		ticketIDs = append(ticketIDs, t.ID)
		if artifactURL == "" {
			artifactURL = t.ArtifactURL
		}
	}

	err := u.deps.EventBus.Publish(ctx, entities.TicketBatchIssued_v1{
		Header:         entities.NewEventHeaderWithIdempotencyKey(idempotency.GetKey(ctx) + booking.ID.String() + "-tickets"),
		BookingID:      booking.ID,
		UserID:         booking.UserID,
		PromotionID:    promo.ID,
		PromotionTitle: promo.Title,
		Requested:      requested,
		Issued:         len(issued),
		TicketIDs:      ticketIDs,
		ArtifactURL:    artifactURL,
	})
	if err != nil {
		log.FromContext(ctx).
			WithField("booking_id", booking.ID).
			WithField("error", err).
			Error("Failed to publish ticket batch issued event")
	}
}

func (u *SubmitBookingUsecase) publishAffiliateConverted(
	ctx context.Context,
	booking bdomain.Booking,
	promo *pdomain.Promotion,
	affiliate *adomain.AffiliateLink,
) {
	err := u.deps.EventBus.Publish(ctx, entities.AffiliateConverted_v1{
		Header:          entities.NewEventHeaderWithIdempotencyKey(idempotency.GetKey(ctx) + booking.ID.String() + "-affiliate"),
		AffiliateLinkID: affiliate.ID,
		AffiliateUserID: affiliate.UserID,
		BookingID:       booking.ID,
		PromotionID:     promo.ID,
		PromotionTitle:  promo.Title,
		Amount:          entities.NewMoney(booking.TotalAmount, booking.Currency),
		Commission:      entities.NewMoney(booking.AffiliateCommission, booking.Currency),
	})
	if err != nil {
		log.FromContext(ctx).
			WithField("booking_id", booking.ID).
			WithField("error", err).
			Error("Failed to publish affiliate converted event")
	}
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"promobook/internal/application/usecases/booking"
	bdomain "promobook/internal/domain/bookings"
	pdomain "promobook/internal/domain/promotions"
	"promobook/internal/idempotency"
)

type SubmitBookingRequest struct {
	PromotionID   string    `json:"promotion_id"`
	Quantity      int       `json:"quantity"`
	TravelDate    time.Time `json:"travel_date"`
	AffiliateCode string    `json:"affiliate_code,omitempty"`
}

type SubmitBookingResponse struct {
	BookingID           uuid.UUID        `json:"booking_id"`
	Status              string           `json:"status"`
	TotalAmount         decimal.Decimal  `json:"total_amount"`
	CommissionAmount    decimal.Decimal  `json:"commission_amount"`
	AffiliateCommission decimal.Decimal  `json:"affiliate_commission"`
	Currency            string           `json:"currency"`
	PaymentReference    string           `json:"payment_reference"`
	TicketsRequested    int              `json:"tickets_requested"`
	TicketsIssued       int              `json:"tickets_issued"`
	Tickets             []TicketResponse `json:"tickets"`
}

func (s *Server) SubmitBookingHandler(c echo.Context) error {
	ctx := c.Request().Context()

	// Identity is established upstream; the gateway forwards it in headers.
	userID := c.Request().Header.Get("X-User-ID")

	if key := c.Request().Header.Get("X-Idempotency-Key"); key != "" {
		ctx = idempotency.WithKey(ctx, key)
	}

	var request SubmitBookingRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	promotionID, err := uuid.Parse(request.PromotionID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, "promotion_id is not a valid UUID")
	}

	result, err := s.submitBooking.SubmitBooking(ctx, booking.SubmitBookingRequest{
		UserID:        userID,
		UserEmail:     c.Request().Header.Get("X-User-Email"),
		UserName:      c.Request().Header.Get("X-User-Name"),
		PromotionID:   promotionID,
		Quantity:      request.Quantity,
		TravelDate:    request.TravelDate,
		AffiliateCode: request.AffiliateCode,
	})
	if err != nil {
		return c.JSON(statusForError(err), map[string]string{"error": err.Error()})
	}

	tickets := make([]TicketResponse, 0, len(result.Tickets))
	for _, t := range result.Tickets {
		tickets = append(tickets, ticketToResponse(t))
	}

	return c.JSON(http.StatusCreated, SubmitBookingResponse{
		BookingID:           result.Booking.ID,
		Status:              string(result.Booking.Status),
		TotalAmount:         result.Booking.TotalAmount,
		CommissionAmount:    result.Booking.CommissionAmount,
		AffiliateCommission: result.Booking.AffiliateCommission,
		Currency:            result.Booking.Currency,
		PaymentReference:    result.Booking.PaymentReference,
		TicketsRequested:    result.Booking.Quantity,
		TicketsIssued:       len(result.Tickets),
		Tickets:             tickets,
	})
}

// statusForError maps the saga's error taxonomy onto HTTP statuses. The
// inconsistency case deliberately returns 500: the caller must not retry
// it blindly, the charge already went through.
func statusForError(err error) int {
	inconsistency := &bdomain.InconsistencyError{}

	switch {
	case errors.Is(err, bdomain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, bdomain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, pdomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pdomain.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, bdomain.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.As(err, &inconsistency):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

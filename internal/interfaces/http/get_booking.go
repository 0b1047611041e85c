package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	bdomain "promobook/internal/domain/bookings"
)

func (s *Server) GetBookingHandler(c echo.Context) error {
	bookingID := c.Param("booking_id")
	if bookingID == "" {
		return c.JSON(http.StatusBadRequest, "booking_id is required")
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, "booking_id is not a valid UUID")
	}

	booking, err := s.bookings.GetBooking(c.Request().Context(), id)
	if errors.Is(err, bdomain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, "booking not found")
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	tickets, err := s.tickets.ListByBooking(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	ticketResponses := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		ticketResponses = append(ticketResponses, ticketToResponse(t))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"booking": booking,
		"tickets": ticketResponses,
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	tdomain "promobook/internal/domain/tickets"
)

type TicketResponse struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	TicketNumber string    `json:"ticket_number"`
	ArtifactURL  string    `json:"artifact_url"`
	IsUsed       bool      `json:"is_used"`
	CreatedAt    time.Time `json:"created_at"`
}

func ticketToResponse(t tdomain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		BookingID:    t.BookingID,
		TicketNumber: t.TicketNumber,
		ArtifactURL:  t.ArtifactURL,
		IsUsed:       t.IsUsed,
		CreatedAt:    t.CreatedAt,
	}
}

func (s *Server) GetTicketsHandler(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, "missing user identity")
	}

	tickets, err := s.tickets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	responses := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, ticketToResponse(t))
	}

	return c.JSON(http.StatusOK, responses)
}

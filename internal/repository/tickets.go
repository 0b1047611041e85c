package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	domain "promobook/internal/domain/tickets"
)

const pqUniqueViolation = "23505"

type ticketRow struct {
	ID           uuid.UUID `db:"id"`
	BookingID    uuid.UUID `db:"booking_id"`
	UserID       string    `db:"user_id"`
	TicketNumber string    `db:"ticket_number"`
	ArtifactURL  string    `db:"artifact_url"`
	IsUsed       bool      `db:"is_used"`
	CreatedAt    time.Time `db:"created_at"`
}

type TicketsRepo struct {
	db *sqlx.DB
}

func NewTicketsRepo(db *sqlx.DB) *TicketsRepo {
	return &TicketsRepo{db: db}
}

// CreateTicket returns domain.ErrNumberTaken on a ticket_number collision
// so the batch generator can retry with a fresh number.
func (r *TicketsRepo) CreateTicket(ctx context.Context, t domain.Ticket) error {
	query := `
		INSERT INTO tickets (
			id, booking_id, user_id, ticket_number, artifact_url, is_used, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.BookingID,
		t.UserID,
		t.TicketNumber,
		t.ArtifactURL,
		t.IsUsed,
		t.CreatedAt,
	)

	pgErr := &pq.Error{}
	if errors.As(err, &pgErr) && pgErr.Code == pqUniqueViolation {
		return domain.ErrNumberTaken
	}
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}

func (r *TicketsRepo) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	var rows []ticketRow

	query := `
		SELECT id, booking_id, user_id, ticket_number, artifact_url, is_used, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list tickets by user: %w", err)
	}

	return rowsToTickets(rows), nil
}

func (r *TicketsRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Ticket, error) {
	var rows []ticketRow

	query := `
		SELECT id, booking_id, user_id, ticket_number, artifact_url, is_used, created_at
		FROM tickets
		WHERE booking_id = $1
		ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &rows, query, bookingID); err != nil {
		return nil, fmt.Errorf("list tickets by booking: %w", err)
	}

	return rowsToTickets(rows), nil
}

func rowsToTickets(rows []ticketRow) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, domain.Ticket{
			ID:           row.ID,
			BookingID:    row.BookingID,
			UserID:       row.UserID,
			TicketNumber: row.TicketNumber,
			ArtifactURL:  row.ArtifactURL,
			IsUsed:       row.IsUsed,
			CreatedAt:    row.CreatedAt,
		})
	}

	return tickets
}

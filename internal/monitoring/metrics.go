package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Bookings persisted with a successful charge",
		},
	)

	paymentsDeclined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_declined_total",
			Help: "Charges declined or failed by the payment gateway",
		},
	)

	bookingInconsistencies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_inconsistencies_total",
			Help: "Charges captured without a persisted booking, needs manual reconciliation",
		},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Tickets successfully generated and persisted",
		},
	)

	ticketsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_failed_total",
			Help: "Ticket units that failed artifact generation or persistence",
		},
	)

	notificationsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_stored_total",
			Help: "Notifications persisted, by type",
		},
		[]string{"type"},
	)
)

func BookingConfirmed() { bookingsConfirmed.Inc() }

func PaymentDeclined() { paymentsDeclined.Inc() }

func BookingInconsistency() { bookingInconsistencies.Inc() }

func TicketsIssued(n int) { ticketsIssued.Add(float64(n)) }

func TicketsFailed(n int) { ticketsFailed.Add(float64(n)) }

func NotificationStored(typ string) {
	notificationsStored.WithLabelValues(typ).Inc()
}

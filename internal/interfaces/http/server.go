package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"promobook/internal/application/usecases/booking"
	bdomain "promobook/internal/domain/bookings"
	ndomain "promobook/internal/domain/notifications"
	pdomain "promobook/internal/domain/promotions"
	tdomain "promobook/internal/domain/tickets"
)

type BookingsReader interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*bdomain.Booking, error)
}

type TicketsReader interface {
	ListByUser(ctx context.Context, userID string) ([]tdomain.Ticket, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]tdomain.Ticket, error)
}

type PromotionsReader interface {
	GetPromotion(ctx context.Context, id uuid.UUID) (*pdomain.Promotion, error)
}

type NotificationsReader interface {
	ListByUser(ctx context.Context, userID string, opts ndomain.ListOptions) ([]ndomain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type Server struct {
	e    *echo.Echo
	addr string

	submitBooking *booking.SubmitBookingUsecase
	bookings      BookingsReader
	tickets       TicketsReader
	promotions    PromotionsReader
	notifications NotificationsReader
}

func NewServer(
	e *echo.Echo,
	addr string,
	submitBooking *booking.SubmitBookingUsecase,
	bookings BookingsReader,
	tickets TicketsReader,
	promotions PromotionsReader,
	notifications NotificationsReader,
	routerIsRunning func() bool,
) *Server {
	srv := &Server{
		e:             e,
		addr:          addr,
		submitBooking: submitBooking,
		bookings:      bookings,
		tickets:       tickets,
		promotions:    promotions,
		notifications: notifications,
	}

	e.POST("/bookings", srv.SubmitBookingHandler)
	e.GET("/bookings/:booking_id", srv.GetBookingHandler)
	e.GET("/tickets", srv.GetTicketsHandler)
	e.GET("/promotions/:promotion_id", srv.GetPromotionHandler)

	e.GET("/notifications", srv.GetNotificationsHandler)
	e.GET("/notifications/unread-count", srv.GetUnreadCountHandler)
	e.POST("/notifications/:notification_id/read", srv.MarkNotificationReadHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "router is not running")
		}
		return c.String(http.StatusOK, "ok")
	})

	// logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log.FromContext(c.Request().Context()).
				WithField("path", c.Request().URL.Path).
				Info("Handling a request")

			err := next(c)

			if err != nil {
				log.FromContext(c.Request().Context()).
					WithField("error", err).
					Error("Request handling error")
			}

			return err
		}
	})

	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

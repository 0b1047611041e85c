package app

import (
	"context"
	"os"
	"time"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	trmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"promobook/internal/application/usecases/booking"
	"promobook/internal/config"
	"promobook/internal/infrastructure/event_publisher"
	"promobook/internal/interfaces/events"
	"promobook/internal/interfaces/http"
	"promobook/internal/outbox"
	"promobook/internal/repository"
)

type App struct {
	watermillLogger watermill.LoggerAdapter
	logger          zerolog.Logger
	router          *message.Router
	srv             *http.Server
	forwarder       *outbox.Forwarder
	db              *sqlx.DB
}

func NewApp(
	cfg config.Config,
	watermillLogger watermill.LoggerAdapter,
	paymentsClient PaymentGatewayService,
	artifactsClient ArtifactService,
	emailClient EmailService,
	redisClient *redis.Client,
	db *sqlx.DB,
) (*App, error) {
	promotionsRepo := repository.NewPromotionsRepo(db)
	affiliatesRepo := repository.NewAffiliatesRepo(db)
	bookingsRepo := repository.NewBookingsRepo(db, trmsqlx.DefaultCtxGetter)
	ticketsRepo := repository.NewTicketsRepo(db)
	notificationsRepo := repository.NewNotificationsRepo(db)

	trManager := trmanager.Must(trmsqlx.NewDefaultFactory(db))

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, err
	}

	var publisher message.Publisher
	publisher, err = outbox.NewRedisPublisher(watermillLogger, redisClient)
	if err != nil {
		return nil, err
	}

	publisher = event_publisher.CorrelationPublisherDecorator{
		Publisher: publisher,
	}

	eventBus, err := events.NewEventBus(publisher, watermillLogger)
	if err != nil {
		return nil, err
	}

	txEventBus := outbox.NewTxEventBus(trmsqlx.DefaultCtxGetter, watermillLogger)

	submitBookingUsecase := booking.NewSubmitBookingUsecase(booking.Deps{
		Promotions:          promotionsRepo,
		Affiliates:          affiliatesRepo,
		Bookings:            bookingsRepo,
		Tickets:             ticketsRepo,
		Payments:            paymentsClient,
		Artifacts:           artifactsClient,
		Email:               emailClient,
		TrManager:           trManager,
		TxEventBus:          txEventBus,
		EventBus:            eventBus,
		TicketWorkers:       cfg.TicketWorkers,
		ExternalCallTimeout: cfg.ExternalCallTimeout,
	})

	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(events.CorrelationIDMiddleware)
	router.AddMiddleware(events.LoggingMiddleware)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	// skip marshalling errors before retrying
	router.AddMiddleware(events.SkipMarshallingErrorsMiddleware)

	marshaler := cqrs.JSONMarshaler{
		GenerateName: cqrs.StructName,
	}
	processor, err := events.NewEventProcessor(router, redisClient, marshaler, watermillLogger)
	if err != nil {
		return nil, err
	}

	handler := events.NewHandler(notificationsRepo, emailClient)
	err = processor.AddHandlers(
		handler.BookingConfirmedNotificationHandler(),
		handler.BookingConfirmedEmailHandler(),
		handler.TicketBatchIssuedNotificationHandler(),
		handler.AffiliateConvertedNotificationHandler(),
	)
	if err != nil {
		return nil, err
	}

	forwarder, err := outbox.NewForwarder(db, redisClient, watermillLogger)
	if err != nil {
		return nil, err
	}

	e := commonHTTP.NewEcho()
	srv := http.NewServer(
		e,
		cfg.HTTPAddr,
		submitBookingUsecase,
		bookingsRepo,
		ticketsRepo,
		promotionsRepo,
		notificationsRepo,
		router.IsRunning,
	)

	return &App{
		watermillLogger: watermillLogger,
		logger:          zerolog.New(os.Stdout),
		router:          router,
		srv:             srv,
		forwarder:       forwarder,
		db:              db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := repository.InitializeDBSchema(a.db)
	if err != nil {
		return err
	}

	a.forwarder.RunForwarder(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info().Msg("starting router")

		return a.router.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("router is running")

		a.logger.Info().Msg("starting server")
		return a.srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()

		err := a.srv.Stop(ctx)
		if err != nil {
			a.logger.Err(err).Msg("error stopping server")
		}

		return err
	})

	return g.Wait()
}

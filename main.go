package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"promobook/internal/app"
	"promobook/internal/config"
	"promobook/internal/infrastructure/clients"
)

func main() {
	log.Init(logrus.InfoLevel)

	cfg := config.Load()

	watermillLogger := watermill.NewStdLogger(false, false)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	db := sqlx.MustConnect("postgres", cfg.PostgresURL)
	defer db.Close()

	httpClient := &http.Client{Timeout: 10 * time.Second}
	paymentsClient := clients.NewPaymentsClient(cfg.PaymentGatewayAddr, httpClient)
	artifactsClient := clients.NewArtifactsClient(cfg.ArtifactServiceAddr, httpClient)
	emailClient := clients.NewEmailClient(cfg.EmailServiceAddr, httpClient)

	a, err := app.NewApp(
		cfg,
		watermillLogger,
		paymentsClient,
		artifactsClient,
		emailClient,
		redisClient,
		db,
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize the app")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = a.Run(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("app run failed")
	}
}

package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/rabbitmq"
	"github.com/quickbite/oms/internal/dal/redis"
	outboxrepo "github.com/quickbite/oms/internal/dal/repositories/outbox/postgres"
	"github.com/quickbite/oms/internal/otel"
	"github.com/quickbite/oms/internal/service/services/accountsvc"
	"github.com/quickbite/oms/internal/service/services/assignsvc"
	"github.com/quickbite/oms/internal/service/services/cartsvc"
	"github.com/quickbite/oms/internal/service/services/catalogsvc"
	"github.com/quickbite/oms/internal/service/services/ordersvc"
	"github.com/quickbite/oms/internal/service/services/paymentsvc"
	"github.com/quickbite/oms/internal/service/services/vendorsvc"
	httptransport "github.com/quickbite/oms/internal/transport/http"
	assignerworker "github.com/quickbite/oms/internal/worker/assigner"
	outboxworker "github.com/quickbite/oms/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	assignerWorker *assignerworker.Worker
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	if _, err := rabbitMqClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    ordersvc.OrderCreatedQueue,
		Durable: true,
	}); err != nil {
		panic("failed to declare order queue: " + err.Error())
	}

	assignSvc := assignsvc.MustNewAssignService(
		assignsvc.WithPostgresClient(postgresClient),
	)

	services := httptransport.Services{
		Accounts: accountsvc.MustNewAccountService(
			accountsvc.WithPostgresClient(postgresClient),
		),
		Carts: cartsvc.MustNewCartService(
			cartsvc.WithPostgresClient(postgresClient),
		),
		Catalog: catalogsvc.MustNewCatalogService(
			catalogsvc.WithPostgresClient(postgresClient),
			catalogsvc.WithRedisClient(redisClient),
		),
		Orders: ordersvc.MustNewOrderService(
			ordersvc.WithPostgresClient(postgresClient),
			ordersvc.WithAssigner(assignSvc),
		),
		Payments: paymentsvc.MustNewPaymentService(
			paymentsvc.WithPostgresClient(postgresClient),
		),
		Assigns: assignSvc,
		Vendors: vendorsvc.MustNewVendorService(
			vendorsvc.WithPostgresClient(postgresClient),
		),
	}

	transport := httptransport.NewHTTPTransport(services)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewOutboxPostgresRepository(postgresClient.Pool()),
		rabbitMqClient,
	)
	assignerWorker := assignerworker.NewWorker(assignSvc)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		assignerWorker: assignerWorker,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	go func() {
		slog.Info("Starting assigner worker")
		a.assignerWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown performs graceful shutdown of all application components.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	a.assignerWorker.Stop()
	slog.Info("Assigner worker stopped gracefully")

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	} else {
		slog.Info("Redis connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}

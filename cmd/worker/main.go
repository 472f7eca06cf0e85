package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appconfig "github.com/shopflow/checkout/internal/app/api"
	checkoutmemory "github.com/shopflow/checkout/internal/checkout/adapters/memory"
	checkoutobs "github.com/shopflow/checkout/internal/checkout/adapters/observability"
	checkoutpg "github.com/shopflow/checkout/internal/checkout/adapters/persistence/postgres"
	"github.com/shopflow/checkout/internal/checkout/adapters/simulation"
	checkoutapp "github.com/shopflow/checkout/internal/checkout/application"
	"github.com/shopflow/checkout/internal/checkout/ports"
	checkoutworkflows "github.com/shopflow/checkout/internal/durable/temporal/workflows/checkout"
	"github.com/shopflow/checkout/internal/platform/migrations"
	platformobservability "github.com/shopflow/checkout/internal/platform/observability"
	platformpostgres "github.com/shopflow/checkout/internal/platform/postgres"
	checkoutactivities "github.com/shopflow/checkout/internal/platform/temporal/activities/checkout"
)

func main() {
	ctx := context.Background()
	const serviceName = "checkout-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := appconfig.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stock, audit, orders, invoices, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()
	for item, qty := range cfg.InitialStock {
		if err := stock.SetLevel(ctx, item, qty); err != nil {
			logger.Error("failed to seed stock level", slog.String("item", string(item)), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	coordinator := checkoutapp.Assemble(checkoutapp.Dependencies{
		Stock:    stock,
		Audit:    audit,
		Orders:   orders,
		Invoices: invoices,
		Payments: simulation.NewProbabilisticPaymentPolicy(cfg.PaymentApprovalRate),
		Prices:   cfg.ItemPrices,
	}, checkoutapp.WithLogger(logger))
	service := checkoutobs.New(
		coordinator,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	activities := checkoutactivities.NewActivities(service)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.RunCheckout, activity.RegisterOptions{Name: checkoutactivities.RunCheckoutActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.CheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (ports.StockRepository, ports.AuditLog, ports.OrderRepository, ports.InvoiceRepository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return checkoutmemory.NewStockRepository(), checkoutmemory.NewAuditLog(), checkoutmemory.NewOrderRepository(), checkoutmemory.NewInvoiceRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return checkoutmemory.NewStockRepository(), checkoutmemory.NewAuditLog(), checkoutmemory.NewOrderRepository(), checkoutmemory.NewInvoiceRepository(), func() {}
	}
	logger.Info("worker repositories configured with postgres")
	return checkoutpg.NewStockRepository(db), checkoutmemory.NewAuditLog(), checkoutpg.NewOrderRepository(db), checkoutpg.NewInvoiceRepository(db), cleanup
}

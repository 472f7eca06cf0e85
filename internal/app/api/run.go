package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/gin-gonic/gin"

	checkouthttp "github.com/shopflow/checkout/internal/checkout/adapters/httpapi"
	checkoutmemory "github.com/shopflow/checkout/internal/checkout/adapters/memory"
	checkoutobs "github.com/shopflow/checkout/internal/checkout/adapters/observability"
	checkoutpg "github.com/shopflow/checkout/internal/checkout/adapters/persistence/postgres"
	"github.com/shopflow/checkout/internal/checkout/adapters/simulation"
	checkoutworkflowadapters "github.com/shopflow/checkout/internal/checkout/adapters/workflows"
	checkoutapp "github.com/shopflow/checkout/internal/checkout/application"
	"github.com/shopflow/checkout/internal/checkout/ports"
	"github.com/shopflow/checkout/internal/platform/migrations"
	platformobservability "github.com/shopflow/checkout/internal/platform/observability"
	platformpostgres "github.com/shopflow/checkout/internal/platform/postgres"
)

// Run boots the checkout HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "checkout-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()
	if err := seedStock(ctx, repos.stock, cfg); err != nil {
		return fmt.Errorf("failed to seed stock levels: %w", err)
	}

	coordinator := checkoutapp.Assemble(checkoutapp.Dependencies{
		Stock:    repos.stock,
		Audit:    repos.audit,
		Orders:   repos.orders,
		Invoices: repos.invoices,
		Payments: simulation.NewProbabilisticPaymentPolicy(cfg.PaymentApprovalRate),
		Prices:   cfg.ItemPrices,
	}, checkoutapp.WithLogger(logger))
	service := checkoutobs.New(
		coordinator,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	var orchestrator ports.WorkflowOrchestrator = checkoutworkflowadapters.NewInlineCheckoutWorkflows(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = checkoutworkflowadapters.NewTemporalCheckoutWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := checkouthttp.NewRouterWithGinEngine(gin.Default(), service, orchestrator)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("checkout API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("checkout API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	stock    ports.StockRepository
	audit    ports.AuditLog
	orders   ports.OrderRepository
	invoices ports.InvoiceRepository
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (repositories, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return repositories{
			stock:    checkoutmemory.NewStockRepository(),
			audit:    checkoutmemory.NewAuditLog(),
			orders:   checkoutmemory.NewOrderRepository(),
			invoices: checkoutmemory.NewInvoiceRepository(),
		}, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repositories", slog.String("error", err.Error()))
		cleanup()
		return repositories{
			stock:    checkoutmemory.NewStockRepository(),
			audit:    checkoutmemory.NewAuditLog(),
			orders:   checkoutmemory.NewOrderRepository(),
			invoices: checkoutmemory.NewInvoiceRepository(),
		}, func() {}
	}
	logger.Info("checkout repositories configured with postgres")
	return repositories{
		stock: checkoutpg.NewStockRepository(db),
		// Audit entries stay in memory; they are advisory and never read back
		// by the transaction flow.
		audit:    checkoutmemory.NewAuditLog(),
		orders:   checkoutpg.NewOrderRepository(db),
		invoices: checkoutpg.NewInvoiceRepository(db),
	}, cleanup
}

func seedStock(ctx context.Context, stock ports.StockRepository, cfg Config) error {
	for item, qty := range cfg.InitialStock {
		if err := stock.SetLevel(ctx, item, qty); err != nil {
			return err
		}
	}
	return nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

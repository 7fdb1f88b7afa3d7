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
	"gorm.io/gorm"

	coffeeshopserver "github.com/beandock/coffeeshop-api/server"

	catalogmemory "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/beandock/coffeeshop-api/internal/domains/catalog/application"
	catalogports "github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
	ordersmemory "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/beandock/coffeeshop-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/beandock/coffeeshop-api/internal/domains/orders/application"
	ordersports "github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
	usersmemory "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/memory"
	usersobs "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/beandock/coffeeshop-api/internal/domains/users/application"
	usersports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
	platformmigrations "github.com/beandock/coffeeshop-api/internal/platform/migrations"
	platformobservability "github.com/beandock/coffeeshop-api/internal/platform/observability"
	platformpostgres "github.com/beandock/coffeeshop-api/internal/platform/postgres"
)

// Run boots the Coffee Shop HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "coffeeshop-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
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

	db, cleanupDB := connectDatabase(ctx, cfg, logger)
	defer cleanupDB()

	userService, catalogService, orderService := buildServices(cfg, db, instruments)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled via TEMPORAL_DISABLED, placing orders inline")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	auth := coffeeshopserver.NewAuthMiddleware(userService)
	handlers := coffeeshopserver.ApiHandleFunctions{
		AuthAPI:     coffeeshopserver.NewAuthAPI(userService),
		UserAPI:     coffeeshopserver.NewUserAPI(userService),
		CategoryAPI: coffeeshopserver.NewCategoryAPI(catalogService),
		ProductAPI:  coffeeshopserver.NewProductAPI(catalogService),
		OrderAPI:    coffeeshopserver.NewOrderAPI(orderService, orderWorkflows),
	}

	router := coffeeshopserver.NewRouter(handlers, auth, otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("Coffee Shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Coffee Shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildServices assembles the three bounded contexts on postgres when a
// connection is available, otherwise on the in-memory adapters. The memory
// order engine reserves stock through the catalog's product repository.
func buildServices(cfg Config, db *gorm.DB, instruments *platformobservability.Instruments) (usersports.Service, catalogports.Service, ordersports.Service) {
	var (
		userRepo     usersports.Repository
		sessionStore usersports.SessionStore
		categoryRepo catalogports.CategoryRepository
		productRepo  catalogports.ProductRepository
		orderRepo    ordersports.Repository
	)
	if db != nil {
		userRepo = userspostgres.NewRepository(db)
		sessionStore = userspostgres.NewSessionStore(db)
		categoryRepo = catalogpostgres.NewCategoryRepository(db)
		productRepo = catalogpostgres.NewProductRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
	} else {
		products := catalogmemory.NewProductRepository()
		userRepo = usersmemory.NewRepository()
		sessionStore = usersmemory.NewSessionStore()
		categoryRepo = catalogmemory.NewCategoryRepository()
		productRepo = products
		orderRepo = ordersmemory.NewRepository(products)
	}

	userService := usersobs.New(
		usersapp.NewService(userRepo, sessionStore,
			usersapp.WithSessionTTL(cfg.SessionTTL),
			usersapp.WithBcryptCost(cfg.BcryptCost),
		),
		usersobs.WithLogger(instruments.Logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	catalogService := catalogapp.NewService(categoryRepo, productRepo)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo),
		ordersobs.WithLogger(instruments.Logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return userService, catalogService, orderService
}

// connectDatabase dials PostgreSQL from the config DSN and applies the schema.
// A missing or unreachable database falls back to in-memory repositories.
func connectDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalAddress == "" {
		return nil, errors.New("temporal address not configured")
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

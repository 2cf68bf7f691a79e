package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/hoshop/backend/internal/application/catalog"
	financeapp "github.com/hoshop/backend/internal/application/finance"
	tradeapp "github.com/hoshop/backend/internal/application/trade"
	"github.com/hoshop/backend/internal/infrastructure/auth"
	"github.com/hoshop/backend/internal/infrastructure/cache"
	"github.com/hoshop/backend/internal/infrastructure/config"
	"github.com/hoshop/backend/internal/infrastructure/logger"
	"github.com/hoshop/backend/internal/infrastructure/persistence"
	"github.com/hoshop/backend/internal/infrastructure/telemetry"
	"github.com/hoshop/backend/internal/interfaces/http/handler"
	"github.com/hoshop/backend/internal/interfaces/http/middleware"
	"github.com/hoshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const (
	shutdownTimeout         = 30 * time.Second
	stockCollectionInterval = time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(baseLog)
	}()

	ctx := context.Background()

	// Telemetry providers fall back to no-ops when disabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, shutdown := range []func(context.Context) error{
			loggerProvider.Shutdown, meterProvider.Shutdown, tracerProvider.Shutdown,
		} {
			if err := shutdown(shutdownCtx); err != nil {
				baseLog.Error("Telemetry shutdown failed", zap.Error(err))
			}
		}
	}()

	log := telemetry.TeeLogger(baseLog, loggerProvider, logger.ParseLevel(cfg.Telemetry.LogsLevel))

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	location, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Invalid timezone", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	dbTracing.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
	if db.Driver() == config.DriverSQLite {
		dbTracing.DBSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
		log.Info("Schema auto-migrated")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	ledgerRepo := persistence.NewGormCashTransactionRepository(db.DB)
	orderLedgerReader := persistence.NewGormOrderLedgerReader(db.DB)
	reportRepo := persistence.NewGormDailyReportRepository(db.DB)
	categoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	resetter := persistence.NewGormLedgerResetter(db.DB)

	// Application services
	orderService := tradeapp.NewOrderService(tradeapp.OrderServiceConfig{
		OrderRepo:        orderRepo,
		ProductRepo:      productRepo,
		LedgerRepo:       ledgerRepo,
		Logger:           log,
		AutoDeliverAfter: cfg.Order.AutoDeliverAfter,
	})
	financeService := financeapp.NewFinanceService(financeapp.FinanceServiceConfig{
		LedgerRepo:   ledgerRepo,
		OrderReader:  orderLedgerReader,
		ReportRepo:   reportRepo,
		CategoryRepo: categoryRepo,
		ProductRepo:  productRepo,
		ReviewRepo:   reviewRepo,
		Resetter:     resetter,
		Location:     location,
		AllowReset:   !cfg.App.IsProduction(),
		Logger:       log,
	})
	productService := catalogapp.NewProductService(productRepo, reviewRepo, nil, log)

	meter := meterProvider.Meter("hoshop")
	shopMetrics, err := telemetry.NewShopMetrics(telemetry.ShopMetricsConfig{
		Meter:         meter,
		Logger:        log,
		StockProvider: productRepo,
	})
	if err != nil {
		log.Warn("Failed to initialize shop metrics", zap.Error(err))
	} else {
		orderService.SetMetrics(shopMetrics)
		financeService.SetMetrics(shopMetrics)
		if meterProvider.IsEnabled() {
			shopMetrics.StartPeriodicCollection(ctx, stockCollectionInterval)
			defer shopMetrics.Stop()
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: request id first so every later layer can log it,
	// tracing before metrics so the span covers the whole request.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(meter))

	routes := router.ShopRoutes(router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Orders:   handler.NewOrderHandler(orderService),
		Finance:  handler.NewFinanceHandler(financeService),
		Products: handler.NewProductHandler(productService),
	}, router.Guards{
		Auth:         middleware.JWTAuth(jwtService, log),
		OptionalAuth: middleware.OptionalJWTAuth(jwtService),
		Idempotency:  middleware.Idempotency(idempotencyStore, cfg.Order.IdempotencyTTL),
	})
	router.NewRouter(engine, router.WithAPIVersion("v1")).Register(routes...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	appidentity "github.com/erp/erpcore/internal/application/identity"
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/erp/erpcore/internal/infrastructure/auth"
	"github.com/erp/erpcore/internal/infrastructure/config"
	"github.com/erp/erpcore/internal/infrastructure/event"
	"github.com/erp/erpcore/internal/infrastructure/logger"
	"github.com/erp/erpcore/internal/infrastructure/persistence"
	"github.com/erp/erpcore/internal/infrastructure/printing"
	"github.com/erp/erpcore/internal/infrastructure/storage"
	"github.com/erp/erpcore/internal/infrastructure/telemetry"
	"github.com/erp/erpcore/internal/interfaces/http/handler"
	"github.com/erp/erpcore/internal/interfaces/http/middleware"
	"github.com/erp/erpcore/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var version = "dev"

const lowStockSampleInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// The OTLP log provider comes first so the logger can tee into it
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, loggerProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ERP server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profilingAddr := ""
	if cfg.Telemetry.ProfilingEnabled {
		profilingAddr = cfg.Telemetry.ProfilingEndpoint
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry.ServiceName, profilingAddr, log)
	if err != nil {
		log.Warn("Profiling disabled", zap.Error(err))
		profiler, _ = telemetry.NewProfiler(cfg.Telemetry.ServiceName, "", log)
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	defer func() {
		shutdownCtx := context.Background()
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down tracer provider", zap.Error(err))
		}
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down logger provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level, cfg.Telemetry.DBSlowQueryThresh)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		WithVariables:   !cfg.App.IsProduction(),
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected")

	checks := []handler.HealthCheck{{Name: "database", Check: func(ctx context.Context) error {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}}

	blacklist, redisClient := newTokenBlacklist(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("Error closing redis client", zap.Error(err))
			}
		}()
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	documents := newDocumentStore(ctx, cfg.Storage, log)

	metrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter(cfg.Telemetry.ServiceName), log)
	if err != nil {
		log.Warn("Business metrics disabled", zap.Error(err))
	}
	defer metrics.Stop()

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	alertRepo := persistence.NewGormAlertRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)

	eventBus := event.NewInMemoryEventBus(log)
	stockAlertHandler := appinventory.NewStockAlertHandler(productRepo, alertRepo, log).
		WithNotifier(appinventory.NewLoggingStockAlertNotifier(log)).
		WithMetrics(metrics)
	eventBus.Subscribe(stockAlertHandler)
	log.Info("Event handlers registered",
		zap.Strings("stock_alert_events", stockAlertHandler.EventTypes()))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	var printer appaccounting.InvoicePrinter
	if cfg.Printing.Enabled {
		engine, err := printing.NewTemplateEngine()
		if err != nil {
			log.Fatal("Failed to load invoice templates", zap.Error(err))
		}
		renderer := printing.NewChromedpRenderer(cfg.Printing, log)
		defer func() {
			_ = renderer.Close()
		}()
		printer = printing.NewInvoicePrinter(printing.CompanyFromConfig(cfg.Printing), engine, renderer)
		log.Info("Invoice PDF rendering enabled", zap.Bool("remote_chrome", cfg.Printing.ChromeURL != ""))
	}

	loc := cfg.App.Location()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := appidentity.NewUserService(userRepo, roleRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)
	roleService := appidentity.NewRoleService(roleRepo, userRepo, log)

	accountService := appaccounting.NewAccountService(accountRepo, transactionRepo, eventBus, log)
	transactionService := appaccounting.NewTransactionService(transactionRepo, accountRepo, loc, log)
	invoiceService := appaccounting.NewInvoiceService(appaccounting.InvoiceServiceDeps{
		Invoices:  invoiceRepo,
		Accounts:  accountRepo,
		Ledger:    transactionRepo,
		Printer:   printer,
		Documents: documents,
		Events:    eventBus,
		Metrics:   metrics,
		Location:  loc,
		Logger:    log,
	})
	accountingDashboard := appaccounting.NewDashboardService(accountRepo, transactionRepo, invoiceRepo, loc)
	accountingReports := appaccounting.NewReportService(accountRepo, transactionRepo, loc)

	categoryService := appinventory.NewCategoryService(categoryRepo, log)
	supplierService := appinventory.NewSupplierService(supplierRepo, log)
	productService := appinventory.NewProductService(productRepo, categoryRepo, supplierRepo, log)
	movementService := appinventory.NewMovementService(productRepo, movementRepo, eventBus, metrics, log)
	alertService := appinventory.NewAlertService(alertRepo, log)
	inventoryDashboard := appinventory.NewDashboardService(productRepo, categoryRepo, movementRepo, alertRepo)

	if cfg.App.AdminEmail != "" {
		if err := userService.EnsureAdmin(ctx, cfg.App.AdminName, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
			log.Fatal("Failed to bootstrap administrator", zap.Error(err))
		}
	}

	collectCtx, stopCollect := context.WithCancel(ctx)
	defer stopCollect()
	metrics.StartLowStockCollection(collectCtx, productRepo, lowStockSampleInterval)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Config{
		ServiceName:      cfg.Telemetry.ServiceName,
		APIVersion:       "v1",
		HTTP:             cfg.HTTP,
		TracingEnabled:   tracerProvider.IsEnabled(),
		ProfilingEnabled: profiler.IsEnabled(),
		Meter:            meterProvider.Meter(cfg.Telemetry.ServiceName),
		JWTService:       jwtService,
		TokenChecker:     authService,
		Logger:           log,
	}, router.Handlers{
		Auth:             handler.NewAuthHandler(authService),
		User:             handler.NewUserHandler(userService),
		Role:             handler.NewRoleHandler(roleService),
		Account:          handler.NewAccountHandler(accountService),
		Transaction:      handler.NewTransactionHandler(transactionService),
		Invoice:          handler.NewInvoiceHandler(invoiceService),
		AccountingReport: handler.NewAccountingReportHandler(accountingDashboard, accountingReports),
		Category:         handler.NewCategoryHandler(categoryService),
		Supplier:         handler.NewSupplierHandler(supplierService),
		Product:          handler.NewProductHandler(productService),
		Movement:         handler.NewMovementHandler(movementService),
		InventoryReport:  handler.NewInventoryReportHandler(inventoryDashboard, alertService),
		System:           handler.NewSystemHandler(cfg.App.Name, version, checks...),
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist uses Redis when configured and reachable, memory otherwise.
// The client is returned so the caller can close it and probe it in readiness.
func newTokenBlacklist(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (auth.TokenBlacklist, *redis.Client) {
	if !cfg.Enabled() {
		log.Warn("Redis not configured, revoked tokens are kept in memory")
		return auth.NewInMemoryTokenBlacklist(), nil
	}
	client, err := auth.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, revoked tokens are kept in memory",
			zap.String("addr", cfg.Addr()), zap.Error(err))
		return auth.NewInMemoryTokenBlacklist(), nil
	}
	log.Info("Token blacklist backed by redis", zap.String("addr", cfg.Addr()))
	return auth.NewRedisTokenBlacklist(client), client
}

// newDocumentStore archives invoice PDFs in S3 when a bucket is configured
func newDocumentStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) storage.DocumentStore {
	if !cfg.Enabled() {
		return storage.NewMemoryDocumentStore("memory://documents")
	}
	store, err := storage.NewS3DocumentStore(ctx, cfg, log)
	if err != nil {
		log.Warn("Object storage unavailable, archiving in memory", zap.Error(err))
		return storage.NewMemoryDocumentStore("memory://documents")
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Warn("Failed to ensure storage bucket", zap.String("bucket", store.Bucket()), zap.Error(err))
	}
	return store
}

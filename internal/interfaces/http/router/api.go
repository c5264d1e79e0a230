package router

import (
	"net/http"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/infrastructure/auth"
	"github.com/erp/erpcore/internal/infrastructure/config"
	"github.com/erp/erpcore/internal/infrastructure/logger"
	"github.com/erp/erpcore/internal/interfaces/http/dto"
	"github.com/erp/erpcore/internal/interfaces/http/handler"
	"github.com/erp/erpcore/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// Handlers groups every handler the API mounts
type Handlers struct {
	Auth             *handler.AuthHandler
	User             *handler.UserHandler
	Role             *handler.RoleHandler
	Account          *handler.AccountHandler
	Transaction      *handler.TransactionHandler
	Invoice          *handler.InvoiceHandler
	AccountingReport *handler.AccountingReportHandler
	Category         *handler.CategoryHandler
	Supplier         *handler.SupplierHandler
	Product          *handler.ProductHandler
	Movement         *handler.MovementHandler
	InventoryReport  *handler.InventoryReportHandler
	System           *handler.SystemHandler
}

// Config holds what the engine needs besides the handlers
type Config struct {
	ServiceName      string
	APIVersion       string
	HTTP             config.HTTPConfig
	TracingEnabled   bool
	ProfilingEnabled bool
	// Meter records HTTP metrics; a no-op meter when nil
	Meter        metric.Meter
	JWTService   *auth.JWTService
	TokenChecker middleware.TokenChecker
	Logger       *zap.Logger
}

// healthPaths are kept out of traces and profiles
var healthPaths = []string{"/health", "/health/ready"}

// New builds the gin engine with the middleware chain and every route
func New(cfg Config, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	meter := cfg.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(cfg.ServiceName)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
			SkipPaths:   healthPaths,
		}),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.HTTPMetrics(meter, log),
		middleware.Profiling(cfg.ProfilingEnabled, healthPaths...),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound, "Route not found", c.GetString(logger.RequestIDContextKey)))
	})

	engine.GET("/health", h.System.Health)
	engine.GET("/health/ready", h.System.Ready)

	r := NewRouter(engine,
		WithAPIVersion(cfg.APIVersion),
		WithPermissionLogger(log),
		WithAuthentication(
			middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService:   cfg.JWTService,
				TokenChecker: cfg.TokenChecker,
				Logger:       log,
			}),
			middleware.SpanEnricher(),
		),
	)
	r.Register(APIGroups(h)...)
	r.Setup()

	return engine
}

// APIGroups returns the route table of /api/v1
func APIGroups(h Handlers) []*DomainGroup {
	const (
		usersRead       = identity.CapabilityUsersRead
		usersWrite      = identity.CapabilityUsersWrite
		usersDelete     = identity.CapabilityUsersDelete
		accountingRead  = identity.CapabilityAccountingRead
		accountingWrite = identity.CapabilityAccountingWrite
		inventoryRead   = identity.CapabilityInventoryRead
		inventoryWrite  = identity.CapabilityInventoryWrite
		dashboardRead   = identity.CapabilityDashboardRead
	)

	login := NewPublicGroup("auth", "/auth").
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh)

	session := NewDomainGroup("session", "/auth").
		POST("/logout", h.Auth.Logout)

	users := NewDomainGroup("users", "/users").
		GET("/profile", h.Auth.Profile).
		GET("", h.User.List, usersRead).
		GET("/:id", h.User.Get, usersRead).
		POST("", h.User.Create, usersWrite).
		PUT("/:id", h.User.Update, usersWrite).
		DELETE("/:id", h.User.Delete, usersDelete)

	roles := NewDomainGroup("roles", "/roles").
		GET("", h.Role.List, usersRead).
		GET("/:id", h.Role.Get, usersRead).
		POST("", h.Role.Create, usersWrite).
		PUT("/:id", h.Role.Update, usersWrite).
		DELETE("/:id", h.Role.Delete, usersWrite)

	accountingGroup := NewDomainGroup("accounting", "/accounting").
		GET("/dashboard", h.AccountingReport.Dashboard, dashboardRead).
		GET("/accounts", h.Account.List, accountingRead).
		GET("/accounts/:id", h.Account.Get, accountingRead).
		POST("/accounts", h.Account.Create, accountingWrite).
		PUT("/accounts/:id", h.Account.Update, accountingWrite).
		PATCH("/accounts/:id/default", h.Account.SetDefault, accountingWrite).
		PATCH("/accounts/:id/deactivate", h.Account.Deactivate, accountingWrite).
		PATCH("/accounts/:id/activate", h.Account.Activate, accountingWrite).
		GET("/transactions", h.Transaction.List, accountingRead).
		POST("/transactions", h.Transaction.Create, accountingWrite).
		GET("/invoices", h.Invoice.List, accountingRead).
		GET("/invoices/:id", h.Invoice.Get, accountingRead).
		GET("/invoices/:id/pdf", h.Invoice.PDF, accountingRead).
		POST("/invoices", h.Invoice.Create, accountingWrite).
		PATCH("/invoices/:id/status", h.Invoice.UpdateStatus, accountingWrite).
		GET("/reports/income-statement", h.AccountingReport.IncomeStatement, accountingRead).
		GET("/reports/balance-sheet", h.AccountingReport.BalanceSheet, accountingRead)

	inventoryGroup := NewDomainGroup("inventory", "/inventory").
		GET("/dashboard", h.InventoryReport.Dashboard, dashboardRead).
		GET("/categories", h.Category.List, inventoryRead).
		GET("/categories/:id", h.Category.Get, inventoryRead).
		POST("/categories", h.Category.Create, inventoryWrite).
		PUT("/categories/:id", h.Category.Update, inventoryWrite).
		GET("/suppliers", h.Supplier.List, inventoryRead).
		GET("/suppliers/:id", h.Supplier.Get, inventoryRead).
		POST("/suppliers", h.Supplier.Create, inventoryWrite).
		PUT("/suppliers/:id", h.Supplier.Update, inventoryWrite).
		GET("/products", h.Product.List, inventoryRead).
		GET("/products/:id", h.Product.Get, inventoryRead).
		POST("/products", h.Product.Create, inventoryWrite).
		PUT("/products/:id", h.Product.Update, inventoryWrite).
		GET("/movements", h.Movement.List, inventoryRead).
		POST("/movements", h.Movement.Record, inventoryWrite).
		GET("/alerts", h.InventoryReport.Alerts, inventoryRead).
		PATCH("/alerts/:id/resolve", h.InventoryReport.ResolveAlert, inventoryWrite).
		GET("/reports/stock-levels", h.InventoryReport.StockLevels, inventoryRead).
		GET("/reports/low-stock", h.InventoryReport.LowStock, inventoryRead)

	return []*DomainGroup{login, session, users, roles, accountingGroup, inventoryGroup}
}

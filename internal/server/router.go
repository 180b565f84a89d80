package server

import (
	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	TransactionService services.TransactionServiceInterface
	ReportService      services.ReportServiceInterface
	TokenService       services.TokenServiceInterface
	Health             handlers.Pinger
	RateLimiter        *middleware.RateLimiter
	Registry           *prometheus.Registry
}

// NewRouter builds the echo instance with middleware and every route.
func NewRouter(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(deps.Registry).Handle

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.BodyLimit(cfg.Security.BodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.TraceIDHeader},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
	}))

	healthHandler := handlers.NewHealthCheckHandler(deps.Health)
	e.GET("/health", healthHandler.HealthCheck)
	if deps.Registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	transactionHandler := handlers.NewTransactionHandler(deps.TransactionService, deps.ReportService)

	api := e.Group("/api/v1")
	api.Use(middleware.RequireAuth(deps.TokenService))
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/report", transactionHandler.MonthlyReport)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	return e
}

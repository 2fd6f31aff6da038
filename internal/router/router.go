package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"maintrack/internal/alert"
	"maintrack/internal/handler/api"
	"maintrack/internal/identity"
	"maintrack/internal/middleware"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	repos *api.Repos,
	orchestrator api.Executor,
	reconciler api.Importer,
	verifier identity.Verifier,
	alerts alert.Notifier,
	logger *zap.Logger,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	recurringHandler := api.NewRecurringHandler(repos, logger)
	executionHandler := api.NewExecutionHandler(orchestrator, alerts, logger)
	importHandler := api.NewImportHandler(reconciler, logger)

	apiGroup := e.Group("/api")

	rwo := apiGroup.Group("/recurring-work-orders")
	rwo.POST("", recurringHandler.Create)
	rwo.GET("", recurringHandler.List)
	rwo.POST("/execute", executionHandler.Execute)
	rwo.GET("/:id", recurringHandler.Get)
	rwo.POST("/:id/pause", recurringHandler.Pause)
	rwo.POST("/:id/resume", recurringHandler.Resume)
	rwo.POST("/:id/cancel", recurringHandler.Cancel)
	rwo.DELETE("/:id", recurringHandler.Delete)
	rwo.GET("/:id/executions", recurringHandler.Executions)

	// Import requires an administrator identity.
	imports := apiGroup.Group("/imports")
	imports.Use(middleware.AdminAuth(verifier))
	imports.POST("/recurring-work-orders", importHandler.Import)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintrack/internal/alert"
	"maintrack/internal/bootstrap"
	"maintrack/internal/config"
	"maintrack/internal/engine"
	"maintrack/internal/handler/api"
	"maintrack/internal/identity"
	"maintrack/internal/importer"
	"maintrack/internal/notify"
	"maintrack/internal/payment"
	"maintrack/internal/renderer"
	"maintrack/internal/repository"
	"maintrack/internal/router"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if hasArg("--bootstrap-db") {
		if err := runDBBootstrap(cfg); err != nil {
			logger.Fatal("Database bootstrap failed", zap.Error(err))
		}
		logger.Info("Database bootstrap completed")
		return
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.MigrateAndSeed(db, cfg.Import.DefaultCompanyName, cfg.Import.DefaultClientEmail); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Repositories ---
	recurringRepo := repository.NewRecurringWorkOrderRepository(db)
	executionRepo := repository.NewExecutionRepository(db)
	workOrderRepo := repository.NewWorkOrderRepository(db)
	mappingRepo := repository.NewLocationMappingRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	clientRepo := repository.NewClientRepository(db)

	// --- Execution claim guard (Redis with in-memory fallback) ---
	claims, claimErr := engine.NewClaimGuard(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB, time.Hour)
	if claimErr != nil {
		logger.Warn("Redis unavailable for execution claims, using in-memory fallback", zap.Error(claimErr))
	}

	// --- External collaborators ---
	paymentProvider := payment.NewStripeProvider(cfg.Payment.StripeSecretKey)
	docRenderer := renderer.NewHTTPRenderer(cfg.Renderer.BaseURL, cfg.Renderer.APIKey)
	mailer := notify.NewHTTPMailer(cfg.Mailer.BaseURL, cfg.Mailer.APIKey, cfg.Mailer.From)
	verifier := identity.NewHTTPVerifier(cfg.Identity.BaseURL)

	var alerts alert.Notifier = alert.NopNotifier{}
	if cfg.Alert.TelegramToken != "" && cfg.Alert.TelegramChatID != "" {
		alerts = alert.NewTelegramNotifier(cfg.Alert.TelegramToken, cfg.Alert.TelegramChatID)
	}

	// --- Core components ---
	orchestrator := engine.NewOrchestrator(
		recurringRepo, executionRepo, workOrderRepo,
		paymentProvider, docRenderer, mailer, claims, logger,
	)
	reconciler := importer.NewReconciler(
		recurringRepo, mappingRepo, categoryRepo, companyRepo, clientRepo,
		importer.Config{
			DefaultCompanyName: cfg.Import.DefaultCompanyName,
			DefaultClientEmail: cfg.Import.DefaultClientEmail,
			DefaultTimezone:    cfg.Import.DefaultTimezone,
		},
		logger,
	)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	repos := &api.Repos{
		Recurring: recurringRepo,
		Execution: executionRepo,
		Client:    clientRepo,
		Company:   companyRepo,
	}
	router.Setup(e, repos, orchestrator, reconciler, verifier, alerts, logger)

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting Maintrack server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func hasArg(name string) bool {
	for _, arg := range os.Args[1:] {
		if arg == name {
			return true
		}
	}
	return false
}

func runDBBootstrap(cfg *config.Config) error {
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	return bootstrap.MigrateAndSeed(db, cfg.Import.DefaultCompanyName, cfg.Import.DefaultClientEmail)
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/internal/database"
	"github.com/propdesk/propdesk/internal/handlers"
	"github.com/propdesk/propdesk/internal/logging"
	"github.com/propdesk/propdesk/internal/mailer"
	"github.com/propdesk/propdesk/internal/middleware"
	"github.com/propdesk/propdesk/internal/routes"
	"github.com/propdesk/propdesk/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(os.Getenv("LOG_LEVEL"))}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Outbound email
	var sender mailer.Sender = mailer.LogSender{}
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg)
	}
	mailQueue := mailer.NewQueue(sender)

	// Services
	gate := access.NewGate(database.DB)
	authService := services.NewAuthService(database.DB, cfg, mailQueue)
	invitationService := services.NewInvitationService(database.DB, gate, cfg, mailQueue)
	propertyService := services.NewPropertyService(database.DB, gate)
	documentService := services.NewDocumentService(database.DB, gate)
	maintenanceService := services.NewMaintenanceService(database.DB, gate)
	checklistService := services.NewChecklistService(database.DB, gate)
	tenantService := services.NewTenantService(database.DB, gate)
	financeService := services.NewFinanceService(database.DB, gate)
	applianceService := services.NewApplianceService(database.DB, gate)
	projectService := services.NewProjectService(database.DB, gate)
	apiKeyService := services.NewAPIKeyService(database.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	accessHandler := handlers.NewAccessHandler(invitationService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	applianceHandler := handlers.NewApplianceHandler(applianceService)
	projectHandler := handlers.NewProjectHandler(projectService)
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, apiKeyService,
		authHandler, healthHandler, propertyHandler, accessHandler,
		documentHandler, maintenanceHandler, checklistHandler, tenantHandler,
		financeHandler, applianceHandler, projectHandler, apiKeyHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	mailQueue.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/internal/handlers"
	"github.com/propdesk/propdesk/internal/middleware"
	"github.com/propdesk/propdesk/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	apiKeys *services.APIKeyService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	propertyHandler *handlers.PropertyHandler,
	accessHandler *handlers.AccessHandler,
	documentHandler *handlers.DocumentHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	checklistHandler *handlers.ChecklistHandler,
	tenantHandler *handlers.TenantHandler,
	financeHandler *handlers.FinanceHandler,
	applianceHandler *handlers.ApplianceHandler,
	projectHandler *handlers.ProjectHandler,
	apiKeyHandler *handlers.APIKeyHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Everything below requires a session.
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/profile", authHandler.GetProfile)
	protected.Put("/profile", authHandler.UpdateProfile)
	protected.Put("/profile/password", authHandler.UpdatePassword)
	protected.Get("/settings", authHandler.GetSettings)
	protected.Put("/settings", authHandler.UpdateSettings)

	properties := protected.Group("/properties")
	properties.Post("", propertyHandler.Create)
	properties.Get("", propertyHandler.List)
	properties.Get("/:id", propertyHandler.Get)
	properties.Put("/:id", propertyHandler.Update)
	properties.Delete("/:id", propertyHandler.Delete)
	properties.Post("/:id/primary-residence", propertyHandler.SetPrimaryResidence)

	// Membership surface lives under the property it concerns.
	properties.Post("/:id/invite", accessHandler.Invite)
	properties.Get("/:id/members", accessHandler.Members)
	properties.Put("/:id/members/:accessId", accessHandler.UpdateMember)
	properties.Delete("/:id/members/:accessId", accessHandler.RemoveMember)

	invitations := protected.Group("/invitations")
	invitations.Get("", accessHandler.ListInvitations)
	invitations.Post("/accept", accessHandler.AcceptInvitation)
	invitations.Post("/decline", accessHandler.DeclineInvitation)

	documents := protected.Group("/documents")
	documents.Post("", documentHandler.Create)
	documents.Get("", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Put("/:id", documentHandler.Update)
	documents.Delete("/:id", documentHandler.Delete)

	maintenance := protected.Group("/maintenance")
	maintenance.Post("", maintenanceHandler.Create)
	maintenance.Get("", maintenanceHandler.List)
	maintenance.Get("/:id", maintenanceHandler.Get)
	maintenance.Put("/:id", maintenanceHandler.Update)
	maintenance.Delete("/:id", maintenanceHandler.Delete)

	checklist := protected.Group("/checklist")
	checklist.Post("", checklistHandler.Create)
	checklist.Get("", checklistHandler.List)
	checklist.Put("/:id", checklistHandler.Update)
	checklist.Delete("/:id", checklistHandler.Delete)

	tenants := protected.Group("/tenants")
	tenants.Post("", tenantHandler.Create)
	tenants.Get("", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.Get)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Delete("/:id", tenantHandler.Delete)

	expenses := protected.Group("/expenses")
	expenses.Post("", financeHandler.CreateExpense)
	expenses.Get("", financeHandler.ListExpenses)
	expenses.Put("/:id", financeHandler.UpdateExpense)
	expenses.Delete("/:id", financeHandler.DeleteExpense)

	budgets := protected.Group("/budgets")
	budgets.Post("", financeHandler.CreateBudget)
	budgets.Get("", financeHandler.ListBudgets)
	budgets.Put("/:id", financeHandler.UpdateBudget)
	budgets.Delete("/:id", financeHandler.DeleteBudget)

	appliances := protected.Group("/appliances")
	appliances.Post("", applianceHandler.Create)
	appliances.Get("", applianceHandler.List)
	appliances.Get("/:id", applianceHandler.Get)
	appliances.Put("/:id", applianceHandler.Update)
	appliances.Delete("/:id", applianceHandler.Delete)

	projects := protected.Group("/projects")
	projects.Post("", projectHandler.Create)
	projects.Get("", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)

	keys := protected.Group("/api-keys")
	keys.Post("", apiKeyHandler.Create)
	keys.Get("", apiKeyHandler.List)
	keys.Delete("/:id", apiKeyHandler.Delete)
	keys.Put("/:id/toggle", apiKeyHandler.Toggle)

	// Machine clients (e.g. Home Assistant) authenticate with an API key
	// instead of a session; maintenance handlers resolve the key owner's
	// identity the same way they resolve a JWT subject.
	ha := api.Group("/integrations/ha")
	ha.Get("/maintenance", middleware.APIKeyRequired(apiKeys, "read:maintenance"), maintenanceHandler.List)
	ha.Post("/maintenance", middleware.APIKeyRequired(apiKeys, "write:maintenance"), maintenanceHandler.Create)
	ha.Put("/maintenance/:id", middleware.APIKeyRequired(apiKeys, "write:maintenance"), maintenanceHandler.Update)
	ha.Delete("/maintenance/:id", middleware.APIKeyRequired(apiKeys, "write:maintenance"), maintenanceHandler.Delete)
	ha.Get("/properties", middleware.APIKeyRequired(apiKeys, "read:maintenance"), propertyHandler.List)
}

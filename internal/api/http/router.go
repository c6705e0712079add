package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/http/handlers"
	"github.com/spec-kit/campus-community/internal/audit"
	"github.com/spec-kit/campus-community/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Admin           *handlers.AdminHandler
	Marketplace     *handlers.MarketplaceHandler
	LostFound       *handlers.LostFoundHandler
	Notifications   *handlers.NotificationsHandler
	Audit           *handlers.AuditHandler
	AuthMiddleware  *auth.AuthMiddleware
	AuditMiddleware *audit.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuditMiddleware.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/superadmin/login", cfg.Auth.SuperadminLogin)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Put("/update-password", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	listings := api.Group("/listings", cfg.AuthMiddleware.Handle)
	listings.Get("/", cfg.Marketplace.ListListings)
	listings.Get("/my-listings", cfg.Marketplace.MyListings)
	listings.Post("/", auth.RequireVerified(), cfg.Marketplace.CreateListing)
	listings.Get("/:id", cfg.Marketplace.GetListing)
	listings.Put("/:id", cfg.Marketplace.UpdateListing)
	listings.Delete("/:id", cfg.Marketplace.DeleteListing)
	listings.Post("/:id/interest", auth.RequireVerified(), cfg.Marketplace.ShowInterest)

	lostFound := api.Group("/lost-found", cfg.AuthMiddleware.Handle)
	lostFound.Get("/", cfg.LostFound.List)
	lostFound.Post("/", auth.RequireVerified(), cfg.LostFound.Create)
	lostFound.Get("/:id", cfg.LostFound.Get)
	lostFound.Put("/:id/status", cfg.LostFound.UpdateStatus)

	notifications := api.Group("/notifications", cfg.AuthMiddleware.Handle)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Put("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Put("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/:id", cfg.Notifications.Delete)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireSuperadmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Put("/users/:id/verify", cfg.Admin.VerifyUser)
	admin.Put("/users/:id/approve-contact", cfg.Admin.ApproveContact)
	admin.Put("/users/:id/status", cfg.Admin.UpdateUserStatus)
	admin.Put("/listings/:id/approve-contact", cfg.Admin.ApproveListingContact)
	admin.Get("/pending-verifications", cfg.Admin.PendingVerifications)
	admin.Get("/pending-contact-approvals", cfg.Admin.PendingContactApprovals)
	admin.Get("/dashboard/stats", cfg.Admin.DashboardStats)
	admin.Get("/audit-logs", cfg.Audit.List)
	admin.Get("/audit-logs/stats", cfg.Audit.Stats)
	admin.Get("/audit-logs/:id", cfg.Audit.Get)
}

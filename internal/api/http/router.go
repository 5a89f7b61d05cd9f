package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/api/http/handlers"
	"github.com/spec-kit/listing-admin/internal/auth"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

// MsgRouteNotFound is returned for unknown paths.
const MsgRouteNotFound = "Route not found"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Staff          *handlers.StaffHandler
	Dashboard      *handlers.DashboardHandler
	Email          *handlers.EmailHandler
	AuthMiddleware *auth.AuthMiddleware
	// ProtectAdmin puts /api/admin behind a staff token with the admin flag.
	ProtectAdmin bool
}

// RegisterRoutes wires HTTP routes. It must run after RegisterMiddlewares.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Status)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/staff/login", cfg.Auth.StaffLogin)
	authGroup.Post("/user/login", cfg.Auth.UserLogin)
	authGroup.Post("/verify-token", cfg.Auth.VerifyToken)

	self := authGroup.Group("/user", cfg.AuthMiddleware.Handle)
	self.Get("/profile", cfg.Auth.GetProfile)
	self.Put("/profile", cfg.Auth.UpdateProfile)
	self.Put("/password", cfg.Auth.ChangePassword)

	var guards []fiber.Handler
	if cfg.ProtectAdmin {
		guards = append(guards, cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	}
	admin := api.Group("/admin", guards...)

	admin.Post("/staff", cfg.Staff.Create)
	admin.Get("/staff", cfg.Staff.List)
	admin.Put("/staff/:staffId/status", cfg.Staff.UpdateStatus)

	admin.Get("/dashboard/stats", cfg.Dashboard.Stats)
	admin.Get("/dashboard/activities", cfg.Dashboard.Activities)

	admin.Get("/users", cfg.Users.List)
	admin.Get("/users/review", cfg.Users.Review)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:userId", cfg.Users.Get)
	admin.Put("/users/:userId", cfg.Users.Update)
	admin.Delete("/users/:userId", cfg.Users.Delete)
	admin.Put("/users/:userId/status", cfg.Users.UpdateStatus)

	admin.Post("/test-email", cfg.Email.SendTest)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound(MsgRouteNotFound, nil)
	})
}

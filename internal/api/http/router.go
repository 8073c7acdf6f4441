package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/http/handlers"
	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Books          *handlers.Resource[domain.Book]
	Categories     *handlers.Resource[domain.Category]
	Roles          *handlers.Resource[domain.Role]
	Records        *handlers.Resource[domain.Record]
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything under /api except the auth
// entry points requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	userGroup := protected.Group("/user")
	userGroup.Get("/profile", cfg.Users.GetProfile)
	userGroup.Put("/profile", cfg.Users.UpdateProfile)
	userGroup.Put("/password", cfg.Users.ChangePassword)
	registerCRUD(userGroup, cfg.Users.Resource, auth.RequireAdmin())

	registerCRUD(protected.Group("/book"), cfg.Books)
	registerCRUD(protected.Group("/category"), cfg.Categories)
	registerCRUD(protected.Group("/record"), cfg.Records)

	// Roles are read-and-update only, and admin-gated.
	roleGroup := protected.Group("/role", auth.RequireAdmin())
	roleGroup.Get("/", cfg.Roles.List)
	roleGroup.Get("/:id", cfg.Roles.GetByID)
	roleGroup.Put("/:id", cfg.Roles.Update)
}

// registerCRUD attaches the five-operation template to a route group.
func registerCRUD[T any](group fiber.Router, handler *handlers.Resource[T], guards ...fiber.Handler) {
	group.Get("/", append(guards, handler.List)...)
	group.Get("/:id", append(guards, handler.GetByID)...)
	group.Post("/", append(guards, handler.Create)...)
	group.Put("/:id", append(guards, handler.Update)...)
	group.Delete("/:id", append(guards, handler.Delete)...)
}

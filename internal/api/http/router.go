package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillforge/backend/internal/api/http/handlers"
	"github.com/skillforge/backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Courses        *handlers.CoursesHandler
	Exams          *handlers.ExamsHandler
	Questions      *handlers.QuestionsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.AuthMiddleware.HandleOptional, cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/users", cfg.Users.List)
	protected.Get("/users/:id", cfg.Users.Get)
	protected.Put("/users/:id/role", cfg.Users.ChangeRole)

	admin := protected.Group("/admin")
	admin.Get("/users/count", cfg.Users.Count)
	admin.Delete("/users", cfg.Users.Purge)

	protected.Post("/courses", cfg.Courses.Create)
	protected.Get("/courses", cfg.Courses.List)
	protected.Get("/courses/:id", cfg.Courses.Get)
	protected.Delete("/courses/:id", cfg.Courses.Delete)

	protected.Post("/exams", cfg.Exams.Create)
	protected.Get("/exams", cfg.Exams.List)
	protected.Get("/exams/course/:courseId", cfg.Exams.ListByCourse)
	protected.Get("/exams/:id", cfg.Exams.Get)
	protected.Delete("/exams/:id", cfg.Exams.Delete)

	protected.Post("/questions", cfg.Questions.Create)
	protected.Get("/questions", cfg.Questions.List)
	protected.Get("/questions/course/:courseId", cfg.Questions.ListByCourse)
	protected.Delete("/questions/:id", cfg.Questions.Delete)

	protected.Get("/dashboard", cfg.Dashboard.Overview)
}

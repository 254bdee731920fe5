package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/upb/courses-api/app"
	"github.com/upb/courses-api/handlers"
	"github.com/upb/courses-api/internal/observability"
	"github.com/upb/courses-api/middleware"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	logger := deps.Logger

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recoverer(logger, deps.Config.Observability.EnableGlobalErrorLogging))
	if deps.Config.Observability.MetricsEnabled {
		r.Use(observability.Middleware)
	}
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	var dbCheck handlers.DatabaseChecker
	if deps.DB != nil {
		dbCheck = deps.DB
	}
	health := handlers.NewHealthHandler(dbCheck, logger)
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)
	if deps.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/", handlers.HandleWelcome)

	users := handlers.NewUserHandler(deps.UserService, logger)
	courses := handlers.NewCourseHandler(deps.CourseService, logger)
	requireAuth := deps.AuthMiddleware.RequireAuth

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(requireAuth).Get("/", users.HandleGetCurrentUser)
			r.With(handlers.ValidateBody[handlers.SignUpRequest](logger)).Post("/", users.HandleSignUp)
		})

		r.Route("/courses", func(r chi.Router) {
			// Bodies are validated before credentials are checked
			validateCourse := handlers.ValidateBody[handlers.CourseRequest](logger)

			r.Get("/", courses.HandleListCourses)
			r.With(validateCourse, requireAuth).Post("/", courses.HandleCreateCourse)
			r.Get("/{id}", courses.HandleGetCourse)
			r.With(validateCourse, requireAuth).Put("/{id}", courses.HandleUpdateCourse)
			r.With(requireAuth).Delete("/{id}", courses.HandleDeleteCourse)
		})
	})

	r.NotFound(handlers.HandleNotFound)
	r.MethodNotAllowed(handlers.HandleNotFound)

	return r
}

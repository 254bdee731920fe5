package app

import (
	"context"
	"fmt"

	"github.com/upb/courses-api/auth"
	"github.com/upb/courses-api/config"
	"github.com/upb/courses-api/internal/observability"
	"github.com/upb/courses-api/middleware"
	"github.com/upb/courses-api/repositories"
	"github.com/upb/courses-api/repositories/memory"
	"github.com/upb/courses-api/repositories/postgres"
	"github.com/upb/courses-api/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB // nil with the memory driver
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users     repositories.UserRepository
	Courses   repositories.CourseRepository
	TxManager repositories.TransactionManager

	// Services
	Hasher        auth.PasswordHasher
	UserService   *services.UserService
	CourseService *services.CourseService

	// Auth
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStorage(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initServices(cfg)

	logger.Info("all dependencies initialized successfully",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("auth_lookup", cfg.Auth.LookupStrategy))
	return deps, nil
}

// initStorage selects the repository implementation for the configured driver
func (d *Dependencies) initStorage(ctx context.Context, cfg *config.Config) error {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		repos := memory.NewStore().NewRepositories()
		d.Users = repos.Users
		d.Courses = repos.Courses
		d.TxManager = memory.NewTransactionManager()
		d.Logger.Warn("using in-memory storage, data is lost on restart")
		return nil
	}

	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}
	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if cfg.Database.AutoMigrate {
		if err := factory.Migrate(ctx); err != nil {
			_ = factory.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if cfg.Observability.MetricsEnabled {
		if err := observability.RegisterDBStats(d.DB.DB, cfg.Database.Database); err != nil {
			d.Logger.Warn("database pool metrics not registered", zap.Error(err))
		}
	}

	repos := factory.NewRepositories()
	d.Users = repos.Users
	d.Courses = repos.Courses
	d.TxManager = factory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices wires the domain services and the Basic auth gate
func (d *Dependencies) initServices(cfg *config.Config) {
	d.Hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	d.UserService = services.NewUserService(d.Users, d.Hasher, services.LookupStrategy(cfg.Auth.LookupStrategy), d.Logger)
	d.CourseService = services.NewCourseService(d.Courses, d.TxManager, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.UserService, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}

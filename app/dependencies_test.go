package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/courses-api/config"
	"github.com/upb/courses-api/repositories/postgres"
	"github.com/upb/courses-api/services"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewDependencies(t *testing.T) {
	t.Run("memory driver wires every component", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.Storage.Driver = config.StorageDriverMemory

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		assert.Nil(t, deps.DB)
		assert.NotNil(t, deps.Users)
		assert.NotNil(t, deps.Courses)
		assert.NotNil(t, deps.TxManager)
		assert.NotNil(t, deps.UserService)
		assert.NotNil(t, deps.CourseService)
		assert.NotNil(t, deps.AuthMiddleware)

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("signed up users can authenticate", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.Storage.Driver = config.StorageDriverMemory
		cfg.Auth.LookupStrategy = config.AuthLookupScan

		deps, err := NewDependencies(ctx, cfg, zap.NewNop())
		require.NoError(t, err)

		_, err = deps.UserService.SignUp(ctx, services.SignUpInput{
			FirstName: "Joe", LastName: "Smith", EmailAddress: "joe@smith.com", Password: "joepassword",
		})
		require.NoError(t, err)

		user, _, err := deps.UserService.Authenticate(ctx, "joe@smith.com", "joepassword")
		require.NoError(t, err)
		assert.Equal(t, "joe@smith.com", user.EmailAddress)
		assert.NotEqual(t, "joepassword", user.Password)
	})

	t.Run("successful initialization with postgres", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		logger := zaptest.NewLogger(t)

		// Skip if database not available
		if !isDatabaseAvailable(t, cfg) {
			t.Skip("database not available")
		}

		deps, err := NewDependencies(ctx, cfg, logger)
		require.NoError(t, err)
		require.NotNil(t, deps)

		assert.NotNil(t, deps.DB)
		assert.NotNil(t, deps.Users)
		assert.NotNil(t, deps.Courses)
		assert.NotNil(t, deps.TxManager)

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("database connection failure", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.Database.Host = "invalid-host-that-does-not-exist"

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "failed to initialize database")
	})
}

// Test helpers

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "courses",
			Password:        "courses",
			Database:        "courses_test",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
			AutoMigrate:     true,
		},
		Storage: config.StorageConfig{Driver: config.StorageDriverPostgres},
		Auth: config.AuthConfig{
			BcryptCost:     4,
			LookupStrategy: config.AuthLookupIndexed,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:       "debug",
			LogFormat:      "json",
			MetricsEnabled: false,
		},
	}
}

func isDatabaseAvailable(t *testing.T, cfg *config.Config) bool {
	factory, err := postgres.NewRepositoryFactory(cfg, zap.NewNop())
	if err != nil {
		return false
	}
	_ = factory.Close()
	return true
}

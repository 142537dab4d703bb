package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"recipebook/internal/config"
	"recipebook/internal/database"
	"recipebook/internal/handlers"
	"recipebook/internal/logger"
	"recipebook/internal/middleware"
	"recipebook/internal/repositories"
	"recipebook/internal/services"
	"recipebook/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	app, cleanup, err := newApp(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build application", zap.Error(err))
	}
	defer cleanup()

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zapLogger.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("driver", cfg.DatabaseDriver))
		if err := app.Listen(cfg.AppPort); err != nil {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	zapLogger.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLogger.Error("error during Fiber shutdown", zap.Error(err))
	}
	zapLogger.Info("server gracefully stopped")
}

// newApp wires repositories, services and handlers into a Fiber app. The
// returned cleanup function releases the database and broker connections.
func newApp(cfg *config.Config, zapLogger *zap.Logger) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Initialize Repositories ---
	recipeRepo, userRepo, closeRepos, err := openRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeRepos)

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, zapLogger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				zapLogger.Warn("failed to close RabbitMQ client", zap.Error(err))
			}
		})
		publisher = mqClient
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.SessionSecret, zapLogger)
	recipeService := services.NewRecipeService(recipeRepo, services.ModeMultiUser, publisher, zapLogger)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, zapLogger, cfg.CookieSecure)
	recipeHandler := handlers.NewRecipeHandler(recipeService, zapLogger)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{AppName: "recipebook"})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1", middleware.LoadSession(authService, zapLogger))
	authHandler.RegisterRoutes(apiV1)
	recipeHandler.RegisterRoutes(apiV1, middleware.SessionRequired())

	return app, cleanup, nil
}

// openRepositories returns the stores selected by DATABASE_DRIVER.
func openRepositories(cfg *config.Config) (repositories.RecipeRepository, repositories.UserRepository, func(), error) {
	if cfg.DatabaseDriver == database.DriverMemory {
		return repositories.NewMockRecipeRepository(), repositories.NewMockUserRepository(), func() {}, nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	closeDB := func() { _ = database.Close(db) }
	return repositories.NewGORMRecipeRepository(db), repositories.NewGORMUserRepository(db), closeDB, nil
}

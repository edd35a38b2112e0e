package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fmzb/hub-api/internal/config"
	"github.com/fmzb/hub-api/internal/database"
	"github.com/fmzb/hub-api/internal/handler"
	"github.com/fmzb/hub-api/internal/middleware"
	"github.com/fmzb/hub-api/internal/models"
	"github.com/fmzb/hub-api/internal/repository"
	"github.com/fmzb/hub-api/internal/router"
	"github.com/fmzb/hub-api/internal/service"
	"github.com/fmzb/hub-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.UserProfile{}, &models.UserActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	analyst, err := buildAnalyst(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create analysis client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	dashboardService := service.NewDashboardService(userRepo, redisClient, cfg.DashboardCacheTTL, cfg.RecentUsersLimit, logger)
	analysisService := service.NewAnalysisService(analyst, userRepo, activityRepo, validate, cfg.AnalysisTimeout, logger)
	activityFeedService := service.NewActivityFeedService(activityRepo, redisClient, cfg.DashboardCacheTTL, logger)
	adminUserService := service.NewAdminUserService(userRepo, activityRepo, validate, logger)
	seedService := service.NewSeedService(userRepo, activityRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		AnalysisHandler:     handler.NewAnalysisHandler(analysisService, logger),
		ActivityFeedHandler: handler.NewActivityFeedHandler(activityFeedService, logger),
		AdminUserHandler:    handler.NewAdminUserHandler(adminUserService, logger),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildAnalyst(cfg config.Config, logger zerolog.Logger) (ai.Analyst, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicAnalyst(ai.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
		})
	default:
		return ai.NewOpenAIAnalyst(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Logger:  logger,
		})
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

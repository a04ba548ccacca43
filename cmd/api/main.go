package main

import (
	"context"
	"log"
	"time"

	"dropoff-intake-api/config"
	"dropoff-intake-api/controllers"
	"dropoff-intake-api/routes"
	"dropoff-intake-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}

	logger := config.InitLogging(cfg)
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = config.LogWriter

	// A dead database is logged, not fatal; requests fail individually until it returns.
	db := config.InitDB(cfg, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := services.EnsureSchema(ctx, db); err != nil {
		logger.Error("Failed to ensure submissions table", zap.Error(err))
	}
	cancel()

	var notifier controllers.Notifier
	if cfg.Mail.Enabled() && len(cfg.NotifyEmails) > 0 {
		notifier = services.NewSubmissionNotifier(config.NewMailer(cfg.Mail), cfg.NotifyEmails)
		logger.Info("Submission notifications enabled", zap.Strings("to", cfg.NotifyEmails))
	}

	if len(cfg.Auth.Users) == 0 {
		logger.Warn("DASHBOARD_USERS is empty; every dashboard request will be rejected")
	}
	for _, warning := range cfg.Auth.CredentialWarnings() {
		logger.Warn("Dashboard credential will never match", zap.String("reason", warning))
	}

	submissions := controllers.NewSubmissionController(services.NewSubmissionService(db), notifier, logger)
	router := routes.NewRouter(logger, routes.Dependencies{
		Submissions:    submissions,
		Auth:           cfg.Auth,
		TrustedProxies: cfg.TrustedProxies,
		Ping: func(ctx context.Context) error {
			return services.Ping(ctx, db)
		},
	})

	logger.Info("🚀 Server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

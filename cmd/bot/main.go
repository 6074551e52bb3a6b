package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/institute_admin_bot/internal/app"
	"github.com/Freeeeeet/institute_admin_bot/internal/config"
	"github.com/Freeeeeet/institute_admin_bot/internal/controller"
	"github.com/Freeeeeet/institute_admin_bot/internal/platform"
	"github.com/Freeeeeet/institute_admin_bot/internal/repository"
	"github.com/Freeeeeet/institute_admin_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting institute admin bot",
		"environment", cfg.Environment,
		"api_base_url", cfg.APIBaseURL)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Подключение к базе
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("✅ Database connected")

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Клиент платформы и сервисы
	client := platform.NewClient(cfg.APIBaseURL, logger)
	sessionRepo := repository.NewSessionRepository(pool)

	authService := service.NewAuthService(client, sessionRepo, logger)
	userService := service.NewUserService(client, logger)
	paymentService := service.NewPaymentService(client, logger)
	pricingService := service.NewPricingService(client, logger)
	lessonService := service.NewLessonService(client, logger)

	screens := service.NewScreenManager(
		authService,
		userService,
		paymentService,
		pricingService,
		lessonService,
		logger,
	)

	// Фоновая чистка истёкших сессий
	scheduler := app.NewScheduler(authService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Телеграм-бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		authService,
		userService,
		paymentService,
		pricingService,
		screens,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Info("✅ Bot is running")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}

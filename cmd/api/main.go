package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/planbar/planbar-api/internal/app"
	"github.com/planbar/planbar-api/internal/config"
	"github.com/planbar/planbar-api/internal/handler"
	"github.com/planbar/planbar-api/internal/notify"
	"github.com/planbar/planbar-api/internal/repository"
	"github.com/planbar/planbar-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting planbar-api",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.HTTPPort),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	coachRepo := repository.NewCoachRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	unavailableRepo := repository.NewUnavailableDateRepository(pool)
	relationRepo := repository.NewRelationRepository(pool)

	// Уведомления администратору (опционально)
	var notifier service.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID != 0 {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramAdminChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = tn
		logger.Info("Telegram notifications enabled")
	}

	// Сервисы
	coachService := service.NewCoachService(coachRepo, relationRepo, logger)
	studentService := service.NewStudentService(studentRepo, unavailableRepo, logger)
	slotService := service.NewSlotService(slotRepo, logger)
	lessonService := service.NewLessonService(
		lessonRepo,
		coachRepo,
		studentRepo,
		unavailableRepo,
		notifier,
		cfg.Timezone,
		logger,
	)

	router := handler.NewRouter(
		cfg.Environment,
		coachService,
		studentService,
		lessonService,
		slotService,
		logger,
	)

	srv := app.NewServer(cfg.HTTPPort, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("Server stopped")
}

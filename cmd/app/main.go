package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduplatform/internal/application/usecase"
	"eduplatform/internal/config"
	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/cache"
	"eduplatform/internal/infrastructure/gateway"
	"eduplatform/internal/infrastructure/notify"
	"eduplatform/internal/infrastructure/repository"
	"eduplatform/internal/infrastructure/security"
	"eduplatform/internal/logger"
	"eduplatform/internal/services"
	handlers "eduplatform/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	defer logger.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Subscription{},
		&domain.Payment{},
	); err != nil {
		logger.Fatal("failed to migrate DB", zap.Error(err))
	}
	// Роль модератора должна существовать, назначают её вручную
	if err := db.Where(domain.Role{Name: domain.RoleModerator}).
		FirstOrCreate(&domain.Role{Name: domain.RoleModerator}).Error; err != nil {
		logger.Fatal("failed to seed roles", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	tokenCache := cache.NewTokenCache(rdb)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	queue := notify.NewQueue(rdb)
	mailer := notify.NewMailer(cfg.SendgridKey, cfg.SenderEmail)
	stripe := gateway.NewStripeClient(cfg.StripeKey, cfg.StripeSuccessURL)

	userUC := usecase.NewUserUseCase(userRepo, tokenCache, hasher, tokenManager)
	courseUC := usecase.NewCourseUseCase(courseRepo, queue)
	lessonUC := usecase.NewLessonUseCase(lessonRepo, courseRepo, queue)
	subUC := usecase.NewSubscriptionUseCase(subRepo, courseRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, courseRepo, lessonRepo, stripe)

	router := handlers.NewRouter(
		handlers.NewUserHandler(userUC, paymentUC),
		handlers.NewCourseHandler(courseUC, subUC),
		handlers.NewLessonHandler(lessonUC),
		handlers.NewPaymentHandler(paymentUC),
		tokenManager,
		cfg.CORSOrigins,
	)

	// Фоновый воркер рассылок и ежедневная чистка неактивных
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := notify.NewWorker(queue, mailer)
	go worker.Run(workerCtx)

	sweeper := services.Schedule(services.NewInactivitySweeper(userRepo))

	port := cfg.HTTPPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server is running", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("shutting down server...")

	stopWorker()
	<-sweeper.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// Пакет services — фоновые регламентные задачи.
package services

import (
	"context"
	"time"

	"eduplatform/internal/infrastructure/repository"
	"eduplatform/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Порог неактивности, после которого аккаунт выключается.
const inactivityThreshold = 30 * 24 * time.Hour

type InactivitySweeper struct {
	users *repository.UserRepository
}

func NewInactivitySweeper(users *repository.UserRepository) *InactivitySweeper {
	return &InactivitySweeper{users: users}
}

func (s *InactivitySweeper) Run(ctx context.Context) {
	before := time.Now().Add(-inactivityThreshold)
	affected, err := s.users.DeactivateInactive(ctx, before)
	if err != nil {
		logger.Error("sweep: deactivate inactive users failed", zap.Error(err))
		return
	}
	if affected > 0 {
		logger.Info("sweep: deactivated inactive users", zap.Int64("count", affected))
	}
}

// Schedule вешает ежедневный запуск на cron и возвращает его для остановки.
func Schedule(sweeper *InactivitySweeper) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		sweeper.Run(ctx)
	})
	c.Start()
	return c
}

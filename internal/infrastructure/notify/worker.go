package notify

import (
	"context"
	"errors"
	"time"

	"eduplatform/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Sender interface {
	SendCourseUpdate(courseName string, recipients []string) error
}

type Worker struct {
	queue  *Queue
	sender Sender
}

func NewWorker(queue *Queue, sender Sender) *Worker {
	return &Worker{queue: queue, sender: sender}
}

// Run крутит цикл доставки до отмены контекста. Ошибки почты только
// логируются: доставка best-effort, наружу они не выходят.
func (w *Worker) Run(ctx context.Context) {
	for {
		task, err := w.queue.Pop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if !errors.Is(err, redis.Nil) {
				logger.Error("notify: pop failed", zap.Error(err))
			}
			continue
		}

		if err := w.sender.SendCourseUpdate(task.Subject, task.Emails); err != nil {
			logger.Error("notify: send failed",
				zap.String("course", task.Subject),
				zap.Int("recipients", len(task.Emails)),
				zap.Error(err))
			continue
		}
		logger.Info("notify: sent",
			zap.String("course", task.Subject),
			zap.Int("recipients", len(task.Emails)))
	}
}

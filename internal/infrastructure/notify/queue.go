// Пакет notify — рассылка писем об обновлении курса через очередь в Redis.
// Запрос только кладёт задачу в список, письма шлёт фоновый воркер, так что
// медленная почта не тормозит ответ API.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const queueKey = "notify:course_updates"

type Task struct {
	Subject string   `json:"subject"`
	Emails  []string `json:"emails"`
}

type Queue struct {
	client *redis.Client
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Dispatch(ctx context.Context, subject string, emails []string) error {
	if len(emails) == 0 {
		return nil
	}
	payload, err := json.Marshal(Task{Subject: subject, Emails: emails})
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, queueKey, payload).Err()
}

// Pop блокируется до появления задачи или таймаута. При таймауте
// возвращает redis.Nil.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (Task, error) {
	res, err := q.client.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		return Task{}, err
	}
	if len(res) != 2 {
		return Task{}, errors.New("unexpected brpop reply")
	}
	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

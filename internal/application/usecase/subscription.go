package usecase

import (
	"context"

	"eduplatform/internal/application/policy"

	"github.com/google/uuid"
)

type SubscriptionRepo interface {
	Toggle(ctx context.Context, userID, courseID uuid.UUID) (added bool, err error)
}

type SubscriptionUseCase struct {
	subs    SubscriptionRepo
	courses CourseRepo
}

func NewSubscriptionUseCase(subs SubscriptionRepo, courses CourseRepo) *SubscriptionUseCase {
	return &SubscriptionUseCase{subs: subs, courses: courses}
}

// Toggle переключает подписку на курс: была — сняли, не было — добавили.
// Повторный вызов просто меняет состояние обратно, ошибок нет.
func (uc *SubscriptionUseCase) Toggle(ctx context.Context, actor policy.Principal, courseID uuid.UUID) (string, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return "", err
	}

	added, err := uc.subs.Toggle(ctx, actor.ID, courseID)
	if err != nil {
		return "", err
	}
	if added {
		return "added", nil
	}
	return "removed", nil
}

package repository

import (
	"context"
	"errors"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle атомарно переключает подписку (user, course): есть — удалить,
// нет — создать. Проверка и запись идут в одной транзакции, уникальный
// индекс idx_user_course страхует от дублей при гонке.
func (r *SubscriptionRepository) Toggle(ctx context.Context, userID, courseID uuid.UUID) (added bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub domain.Subscription
		findErr := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&sub).Error
		if findErr == nil {
			added = false
			return tx.Delete(&sub).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		added = true
		return tx.Create(&domain.Subscription{UserID: userID, CourseID: courseID}).Error
	})
	return added, err
}

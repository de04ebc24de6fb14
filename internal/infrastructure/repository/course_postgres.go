package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).Preload("Lessons").First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// List отдаёт страницу курсов в пределах scope и общее количество.
func (r *CourseRepository) List(ctx context.Context, scope policy.Scope, offset, limit int) ([]domain.Course, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Course{})
	if !scope.All {
		q = q.Where("owner_id = ?", scope.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []domain.Course
	err := q.Preload("Lessons").Order("created_at asc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Select("Lessons").Delete(&domain.Course{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkNotified двигает отметку только вперёд: параллельное обновление
// с более ранним now не откатит её.
func (r *CourseRepository) MarkNotified(ctx context.Context, id uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ? AND (last_notified_at IS NULL OR last_notified_at < ?)", id, now).
		Update("last_notified_at", now).Error
}

// SubscriberEmails — адреса всех подписчиков курса для рассылки.
func (r *CourseRepository) SubscriberEmails(ctx context.Context, courseID uuid.UUID) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("subscriptions.course_id = ?", courseID).
		Pluck("users.email", &emails).Error
	return emails, err
}

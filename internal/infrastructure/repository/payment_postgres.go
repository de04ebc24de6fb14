package repository

import (
	"context"
	"errors"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// PaymentFilter — фильтры списка платежей: курс, урок, способ оплаты,
// сортировка по дате.
type PaymentFilter struct {
	CourseID *uuid.UUID
	LessonID *uuid.UUID
	Method   string
	DateDesc bool
}

func (r *PaymentRepository) List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if filter.CourseID != nil {
		q = q.Where("course_id = ?", *filter.CourseID)
	}
	if filter.LessonID != nil {
		q = q.Where("lesson_id = ?", *filter.LessonID)
	}
	if filter.Method != "" {
		q = q.Where("method = ?", filter.Method)
	}
	order := "date asc"
	if filter.DateDesc {
		order = "date desc"
	}

	var payments []domain.Payment
	err := q.Order(order).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date asc").Find(&payments).Error
	return payments, err
}

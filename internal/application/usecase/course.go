package usecase

import (
	"context"
	"time"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"
	"eduplatform/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourseRepo interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	List(ctx context.Context, scope policy.Scope, offset, limit int) ([]domain.Course, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkNotified(ctx context.Context, id uuid.UUID, now time.Time) error
	SubscriberEmails(ctx context.Context, courseID uuid.UUID) ([]string, error)
}

// Dispatcher кладёт задачу рассылки в очередь. Ошибки доставки не
// возвращаются в запрос.
type Dispatcher interface {
	Dispatch(ctx context.Context, subject string, emails []string) error
}

type CourseUseCase struct {
	courses    CourseRepo
	dispatcher Dispatcher
	now        func() time.Time
}

func NewCourseUseCase(courses CourseRepo, dispatcher Dispatcher) *CourseUseCase {
	return &CourseUseCase{courses: courses, dispatcher: dispatcher, now: time.Now}
}

type CreateCourseInput struct {
	Name        string
	Description string
	Preview     *string
}

type UpdateCourseInput struct {
	Name        *string
	Description *string
	Preview     *string
}

func (uc *CourseUseCase) List(ctx context.Context, actor policy.Principal, offset, limit int) ([]domain.Course, int64, error) {
	return uc.courses.List(ctx, policy.ListScope(actor), offset, limit)
}

func (uc *CourseUseCase) Get(ctx context.Context, actor policy.Principal, id uuid.UUID) (*domain.Course, error) {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(actor, policy.CourseView, course.OwnerID); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) Create(ctx context.Context, actor policy.Principal, in CreateCourseInput) (*domain.Course, error) {
	if err := policy.Decide(actor, policy.CourseCreate, nil); err != nil {
		return nil, err
	}
	ownerID := actor.ID
	course := &domain.Course{
		Name:        in.Name,
		Description: in.Description,
		Preview:     in.Preview,
		OwnerID:     &ownerID,
	}
	if err := uc.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUseCase) Update(ctx context.Context, actor policy.Principal, id uuid.UUID, in UpdateCourseInput) (*domain.Course, error) {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(actor, policy.CourseUpdate, course.OwnerID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Preview != nil {
		fields["preview"] = *in.Preview
	}
	if len(fields) > 0 {
		if err := uc.courses.Update(ctx, id, fields); err != nil {
			return nil, err
		}
		if in.Name != nil {
			course.Name = *in.Name
		}
	}

	uc.notifySubscribers(ctx, course)

	return uc.courses.GetByID(ctx, id)
}

func (uc *CourseUseCase) Delete(ctx context.Context, actor policy.Principal, id uuid.UUID) error {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Decide(actor, policy.CourseDelete, course.OwnerID); err != nil {
		return err
	}
	return uc.courses.Delete(ctx, id)
}

// notifySubscribers решает по отметке last_notified_at, пора ли слать
// рассылку, и ставит задачу в очередь. Отметка двигается сразу после
// решения: упавшая доставка не даст второго письма в том же окне.
func (uc *CourseUseCase) notifySubscribers(ctx context.Context, course *domain.Course) {
	now := uc.now()
	if !ShouldNotify(course.LastNotifiedAt, now) {
		return
	}
	if err := uc.courses.MarkNotified(ctx, course.ID, now); err != nil {
		logger.Warn("course: mark notified failed", zap.String("course_id", course.ID.String()), zap.Error(err))
		return
	}
	emails, err := uc.courses.SubscriberEmails(ctx, course.ID)
	if err != nil {
		logger.Warn("course: subscriber lookup failed", zap.String("course_id", course.ID.String()), zap.Error(err))
		return
	}
	if err := uc.dispatcher.Dispatch(ctx, course.Name, emails); err != nil {
		logger.Warn("course: dispatch failed", zap.String("course_id", course.ID.String()), zap.Error(err))
	}
}

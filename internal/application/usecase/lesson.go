package usecase

import (
	"context"
	"strings"
	"time"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"
	"eduplatform/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Видео принимаем только с одобренного хостинга.
const approvedVideoHost = "https://www.youtube.com/"

func validateVideoLink(link string) error {
	if !strings.Contains(link, approvedVideoHost) {
		return domain.ErrInvalidVideoLink
	}
	return nil
}

type LessonRepo interface {
	Create(ctx context.Context, lesson *domain.Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	List(ctx context.Context, scope policy.Scope, offset, limit int) ([]domain.Lesson, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkNotified(ctx context.Context, id uuid.UUID, now time.Time) error
}

type LessonUseCase struct {
	lessons    LessonRepo
	courses    CourseRepo
	dispatcher Dispatcher
	now        func() time.Time
}

func NewLessonUseCase(lessons LessonRepo, courses CourseRepo, dispatcher Dispatcher) *LessonUseCase {
	return &LessonUseCase{lessons: lessons, courses: courses, dispatcher: dispatcher, now: time.Now}
}

type CreateLessonInput struct {
	Name        string
	Description string
	Preview     *string
	VideoLink   string
	CourseID    uuid.UUID
}

type UpdateLessonInput struct {
	Name        *string
	Description *string
	Preview     *string
	VideoLink   *string
}

func (uc *LessonUseCase) List(ctx context.Context, actor policy.Principal, offset, limit int) ([]domain.Lesson, int64, error) {
	return uc.lessons.List(ctx, policy.ListScope(actor), offset, limit)
}

func (uc *LessonUseCase) Get(ctx context.Context, actor policy.Principal, id uuid.UUID) (*domain.Lesson, error) {
	lesson, err := uc.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(actor, policy.LessonView, lesson.OwnerID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (uc *LessonUseCase) Create(ctx context.Context, actor policy.Principal, in CreateLessonInput) (*domain.Lesson, error) {
	if err := policy.Decide(actor, policy.LessonCreate, nil); err != nil {
		return nil, err
	}
	if err := validateVideoLink(in.VideoLink); err != nil {
		return nil, err
	}
	// Курс обязателен: урок без курса не существует
	if _, err := uc.courses.GetByID(ctx, in.CourseID); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	lesson := &domain.Lesson{
		CourseID:    in.CourseID,
		Name:        in.Name,
		Description: in.Description,
		Preview:     in.Preview,
		VideoLink:   in.VideoLink,
		OwnerID:     &ownerID,
	}
	if err := uc.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (uc *LessonUseCase) Update(ctx context.Context, actor policy.Principal, id uuid.UUID, in UpdateLessonInput) (*domain.Lesson, error) {
	lesson, err := uc.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Decide(actor, policy.LessonUpdate, lesson.OwnerID); err != nil {
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
	if in.VideoLink != nil {
		if err := validateVideoLink(*in.VideoLink); err != nil {
			return nil, err
		}
		fields["video_link"] = *in.VideoLink
	}
	if len(fields) > 0 {
		if err := uc.lessons.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	uc.notifyCourseSubscribers(ctx, lesson)

	return uc.lessons.GetByID(ctx, id)
}

func (uc *LessonUseCase) Delete(ctx context.Context, actor policy.Principal, id uuid.UUID) error {
	lesson, err := uc.lessons.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Decide(actor, policy.LessonDelete, lesson.OwnerID); err != nil {
		return err
	}
	return uc.lessons.Delete(ctx, id)
}

// Подписки живут на курсе, поэтому обновление урока шлёт рассылку
// подписчикам родительского курса и троттлится по его отметке.
func (uc *LessonUseCase) notifyCourseSubscribers(ctx context.Context, lesson *domain.Lesson) {
	course, err := uc.courses.GetByID(ctx, lesson.CourseID)
	if err != nil {
		return
	}
	now := uc.now()
	if !ShouldNotify(course.LastNotifiedAt, now) {
		return
	}
	if err := uc.courses.MarkNotified(ctx, course.ID, now); err != nil {
		return
	}
	_ = uc.lessons.MarkNotified(ctx, lesson.ID, now)

	emails, err := uc.courses.SubscriberEmails(ctx, course.ID)
	if err != nil {
		return
	}
	if err := uc.dispatcher.Dispatch(ctx, course.Name, emails); err != nil {
		logger.Warn("lesson: dispatch failed", zap.String("course_id", course.ID.String()), zap.Error(err))
	}
}

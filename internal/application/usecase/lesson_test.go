package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"

	"github.com/google/uuid"
)

func TestValidateVideoLink(t *testing.T) {
	tests := []struct {
		link string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://www.youtube.com/test_video_link", true},
		{"https://rutube.ru/video/abc", false},
		{"http://example.com/video.mp4", false},
		{"", false},
	}
	for _, tt := range tests {
		err := validateVideoLink(tt.link)
		if tt.ok && err != nil {
			t.Errorf("%q: want ok, got %v", tt.link, err)
		}
		if !tt.ok && !errors.Is(err, domain.ErrInvalidVideoLink) {
			t.Errorf("%q: want ErrInvalidVideoLink, got %v", tt.link, err)
		}
	}
}

func TestLessonCreate(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())
	lessons := newFakeLessonRepo()
	uc := NewLessonUseCase(lessons, courses, &recordingDispatcher{})

	actor := policy.NewPrincipal(uuid.New(), "user@test.com", nil)

	lesson, err := uc.Create(context.Background(), actor, CreateLessonInput{
		Name:      "test lesson",
		VideoLink: "https://www.youtube.com/test_video_link",
		CourseID:  course.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lesson.OwnerID == nil || *lesson.OwnerID != actor.ID {
		t.Errorf("owner must be the actor")
	}

	// Модератору нельзя
	moderator := policy.NewPrincipal(uuid.New(), "mod@test.com", []string{domain.RoleModerator})
	if _, err := uc.Create(context.Background(), moderator, CreateLessonInput{
		Name:      "x",
		VideoLink: "https://www.youtube.com/x",
		CourseID:  course.ID,
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("moderator create: want ErrForbidden, got %v", err)
	}

	// Битая ссылка
	if _, err := uc.Create(context.Background(), actor, CreateLessonInput{
		Name:      "x",
		VideoLink: "https://rutube.ru/x",
		CourseID:  course.ID,
	}); !errors.Is(err, domain.ErrInvalidVideoLink) {
		t.Errorf("bad link: want ErrInvalidVideoLink, got %v", err)
	}

	// Несуществующий курс
	if _, err := uc.Create(context.Background(), actor, CreateLessonInput{
		Name:      "x",
		VideoLink: "https://www.youtube.com/x",
		CourseID:  uuid.New(),
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing course: want ErrNotFound, got %v", err)
	}
}

func TestLessonUpdateNotifiesCourseSubscribers(t *testing.T) {
	ownerID := uuid.New()
	owner := policy.NewPrincipal(ownerID, "owner@test.com", nil)

	courses := newFakeCourseRepo()
	course := seedCourse(courses, ownerID)
	courses.subscribers[course.ID] = []string{"sub@test.com"}

	lessons := newFakeLessonRepo()
	lesson := &domain.Lesson{CourseID: course.ID, Name: "test lesson", VideoLink: "https://www.youtube.com/v", OwnerID: &ownerID}
	_ = lessons.Create(context.Background(), lesson)

	dispatcher := &recordingDispatcher{}
	uc := NewLessonUseCase(lessons, courses, dispatcher)

	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return start }

	if _, err := uc.Update(context.Background(), owner, lesson.ID, UpdateLessonInput{Name: strptr("v2")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if dispatcher.calls != 1 {
		t.Fatalf("want 1 dispatch, got %d", dispatcher.calls)
	}
	if dispatcher.subjects[0] != course.Name {
		t.Errorf("mail subject must name the course, got %q", dispatcher.subjects[0])
	}
	if got := courses.courses[course.ID].LastNotifiedAt; got == nil || !got.Equal(start) {
		t.Errorf("course last_notified_at not advanced: %v", got)
	}

	// Второе обновление через 10 минут — без письма
	uc.now = func() time.Time { return start.Add(10 * time.Minute) }
	if _, err := uc.Update(context.Background(), owner, lesson.ID, UpdateLessonInput{Name: strptr("v3")}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if dispatcher.calls != 1 {
		t.Errorf("update inside window must not dispatch, got %d", dispatcher.calls)
	}
}

func TestLessonUpdateAuthorization(t *testing.T) {
	ownerID := uuid.New()
	courses := newFakeCourseRepo()
	course := seedCourse(courses, ownerID)

	lessons := newFakeLessonRepo()
	lesson := &domain.Lesson{CourseID: course.ID, Name: "l", VideoLink: "https://www.youtube.com/v", OwnerID: &ownerID}
	_ = lessons.Create(context.Background(), lesson)

	uc := NewLessonUseCase(lessons, courses, &recordingDispatcher{})

	stranger := policy.NewPrincipal(uuid.New(), "other@test.com", nil)
	if _, err := uc.Update(context.Background(), stranger, lesson.ID, UpdateLessonInput{Name: strptr("x")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger update: want ErrForbidden, got %v", err)
	}

	moderator := policy.NewPrincipal(uuid.New(), "mod@test.com", []string{domain.RoleModerator})
	if _, err := uc.Update(context.Background(), moderator, lesson.ID, UpdateLessonInput{Name: strptr("x")}); err != nil {
		t.Errorf("moderator update: %v", err)
	}

	if err := uc.Delete(context.Background(), moderator, lesson.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("moderator delete: want ErrForbidden, got %v", err)
	}
	owner := policy.NewPrincipal(ownerID, "owner@test.com", nil)
	if err := uc.Delete(context.Background(), owner, lesson.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}

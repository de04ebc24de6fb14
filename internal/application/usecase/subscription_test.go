package usecase

import (
	"context"
	"errors"
	"testing"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"

	"github.com/google/uuid"
)

func TestSubscriptionToggleAlternates(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())

	uc := NewSubscriptionUseCase(newFakeSubscriptionRepo(), courses)
	actor := policy.NewPrincipal(uuid.New(), "user@test.com", nil)

	want := []string{"added", "removed", "added", "removed"}
	for i, expected := range want {
		msg, err := uc.Toggle(context.Background(), actor, course.ID)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if msg != expected {
			t.Errorf("toggle %d: got %q, want %q", i, msg, expected)
		}
	}
}

func TestSubscriptionToggleCourseNotFound(t *testing.T) {
	uc := NewSubscriptionUseCase(newFakeSubscriptionRepo(), newFakeCourseRepo())
	actor := policy.NewPrincipal(uuid.New(), "user@test.com", nil)

	if _, err := uc.Toggle(context.Background(), actor, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestSubscriptionToggleIsPerPair(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())

	subs := newFakeSubscriptionRepo()
	uc := NewSubscriptionUseCase(subs, courses)

	first := policy.NewPrincipal(uuid.New(), "a@test.com", nil)
	second := policy.NewPrincipal(uuid.New(), "b@test.com", nil)

	if msg, _ := uc.Toggle(context.Background(), first, course.ID); msg != "added" {
		t.Errorf("first user: got %q", msg)
	}
	// Подписка второго пользователя не зависит от первого
	if msg, _ := uc.Toggle(context.Background(), second, course.ID); msg != "added" {
		t.Errorf("second user: got %q", msg)
	}
	if msg, _ := uc.Toggle(context.Background(), first, course.ID); msg != "removed" {
		t.Errorf("first user second toggle: got %q", msg)
	}
}

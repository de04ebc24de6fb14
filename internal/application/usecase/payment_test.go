package usecase

import (
	"context"
	"errors"
	"testing"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
)

func TestCreatePaymentInvalidTarget(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())
	lessons := newFakeLessonRepo()
	lesson := &domain.Lesson{CourseID: course.ID, Name: "test lesson", VideoLink: "https://www.youtube.com/v"}
	_ = lessons.Create(context.Background(), lesson)

	tests := []struct {
		desc     string
		courseID *uuid.UUID
		lessonID *uuid.UUID
	}{
		{"both set", &course.ID, &lesson.ID},
		{"neither set", nil, nil},
	}

	for _, tt := range tests {
		gw := &stubGateway{}
		payments := newFakePaymentRepo()
		uc := NewPaymentUseCase(payments, courses, lessons, gw)

		_, err := uc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
			Summ:     100,
			Method:   domain.MethodCash,
			CourseID: tt.courseID,
			LessonID: tt.lessonID,
		})
		if !errors.Is(err, domain.ErrInvalidTarget) {
			t.Errorf("%s: want ErrInvalidTarget, got %v", tt.desc, err)
		}
		if gw.calls() != 0 {
			t.Errorf("%s: invalid target must not reach the gateway, got %d calls", tt.desc, gw.calls())
		}
		if len(payments.payments) != 0 {
			t.Errorf("%s: nothing must be persisted", tt.desc)
		}
	}
}

func TestCreatePaymentHappyPath(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())

	gw := &stubGateway{}
	payments := newFakePaymentRepo()
	uc := NewPaymentUseCase(payments, courses, newFakeLessonRepo(), gw)

	payment, err := uc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
		Summ:     16500,
		Method:   domain.MethodCash,
		CourseID: &course.ID,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	if payment.SessionID == nil || *payment.SessionID != "sess_1" {
		t.Errorf("session id: %v", payment.SessionID)
	}
	if payment.PaymentLink == nil || *payment.PaymentLink != "http://pay/sess_1" {
		t.Errorf("payment link: %v", payment.PaymentLink)
	}
	if payment.PaymentMethod == nil || *payment.PaymentMethod != "card" {
		t.Errorf("gateway method: %v", payment.PaymentMethod)
	}
	if payment.Summ != 16500 {
		t.Errorf("summ: %d", payment.Summ)
	}
	if payment.Date == nil {
		t.Errorf("date must be set at finalization")
	}

	// Шлюзу ушли название курса и сумма в копейках
	if gw.lastProductName != course.Name {
		t.Errorf("product label: %q", gw.lastProductName)
	}
	if gw.lastAmountMinor != 1650000 {
		t.Errorf("minor units: %d", gw.lastAmountMinor)
	}
	if gw.productCalls != 1 || gw.priceCalls != 1 || gw.sessionCalls != 1 {
		t.Errorf("call counts: product=%d price=%d session=%d", gw.productCalls, gw.priceCalls, gw.sessionCalls)
	}

	if len(payments.payments) != 1 {
		t.Errorf("payment not persisted")
	}
}

func TestCreatePaymentLessonTarget(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())
	lessons := newFakeLessonRepo()
	lesson := &domain.Lesson{CourseID: course.ID, Name: "test lesson", VideoLink: "https://www.youtube.com/v"}
	_ = lessons.Create(context.Background(), lesson)

	gw := &stubGateway{}
	uc := NewPaymentUseCase(newFakePaymentRepo(), courses, lessons, gw)

	if _, err := uc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
		Summ:     500,
		Method:   domain.MethodCashless,
		LessonID: &lesson.ID,
	}); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if gw.lastProductName != "test lesson" {
		t.Errorf("label must come from the lesson, got %q", gw.lastProductName)
	}
}

func TestCreatePaymentGatewayFailure(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())

	for _, stage := range []string{"product", "price", "session"} {
		gw := &stubGateway{failAt: stage}
		payments := newFakePaymentRepo()
		uc := NewPaymentUseCase(payments, courses, newFakeLessonRepo(), gw)

		_, err := uc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
			Summ:     100,
			Method:   domain.MethodCash,
			CourseID: &course.ID,
		})
		if !errors.Is(err, domain.ErrPaymentGateway) {
			t.Errorf("fail at %s: want ErrPaymentGateway, got %v", stage, err)
		}
		if errors.Is(err, domain.ErrInvalidTarget) {
			t.Errorf("fail at %s: gateway error must not look like a client error", stage)
		}
		if len(payments.payments) != 0 {
			t.Errorf("fail at %s: partial gateway state persisted", stage)
		}
	}
}

func TestCreatePaymentTargetNotFound(t *testing.T) {
	gw := &stubGateway{}
	uc := NewPaymentUseCase(newFakePaymentRepo(), newFakeCourseRepo(), newFakeLessonRepo(), gw)

	missing := uuid.New()
	_, err := uc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
		Summ:     100,
		Method:   domain.MethodCash,
		CourseID: &missing,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if gw.calls() != 0 {
		t.Errorf("missing target must not reach the gateway")
	}
}

func TestGetStatus(t *testing.T) {
	courses := newFakeCourseRepo()
	course := seedCourse(courses, uuid.New())

	gw := &stubGateway{}
	payments := newFakePaymentRepo()
	uc := NewPaymentUseCase(payments, courses, newFakeLessonRepo(), gw)

	payment, err := uc.CreatePayment(context.Background(), uuid.New(), CreatePaymentInput{
		Summ:     100,
		Method:   domain.MethodCash,
		CourseID: &course.ID,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	status, err := uc.GetStatus(context.Background(), payment.ID)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if status.PaymentStatus != "paid" || status.Status != "complete" {
		t.Errorf("unexpected status: %+v", status)
	}

	if _, err := uc.GetStatus(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing payment: want ErrNotFound, got %v", err)
	}
}

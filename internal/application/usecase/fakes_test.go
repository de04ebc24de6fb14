package usecase

import (
	"context"
	"time"

	"eduplatform/internal/application/policy"
	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/gateway"
	"eduplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
)

type fakeCourseRepo struct {
	courses     map[uuid.UUID]*domain.Course
	subscribers map[uuid.UUID][]string
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:     map[uuid.UUID]*domain.Course{},
		subscribers: map[uuid.UUID][]string{},
	}
}

func (f *fakeCourseRepo) Create(_ context.Context, course *domain.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	copied := *course
	f.courses[course.ID] = &copied
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) List(_ context.Context, scope policy.Scope, offset, limit int) ([]domain.Course, int64, error) {
	var out []domain.Course
	for _, c := range f.courses {
		if scope.All || (c.OwnerID != nil && *c.OwnerID == scope.OwnerID) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	course, ok := f.courses[id]
	if !ok {
		return domain.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		course.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		course.Description = v.(string)
	}
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) MarkNotified(_ context.Context, id uuid.UUID, now time.Time) error {
	course, ok := f.courses[id]
	if !ok {
		return domain.ErrNotFound
	}
	if course.LastNotifiedAt == nil || course.LastNotifiedAt.Before(now) {
		course.LastNotifiedAt = &now
	}
	return nil
}

func (f *fakeCourseRepo) SubscriberEmails(_ context.Context, courseID uuid.UUID) ([]string, error) {
	return f.subscribers[courseID], nil
}

type fakeLessonRepo struct {
	lessons map[uuid.UUID]*domain.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: map[uuid.UUID]*domain.Lesson{}}
}

func (f *fakeLessonRepo) Create(_ context.Context, lesson *domain.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	copied := *lesson
	f.lessons[lesson.ID] = &copied
	return nil
}

func (f *fakeLessonRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (f *fakeLessonRepo) List(_ context.Context, scope policy.Scope, offset, limit int) ([]domain.Lesson, int64, error) {
	var out []domain.Lesson
	for _, l := range f.lessons {
		if scope.All || (l.OwnerID != nil && *l.OwnerID == scope.OwnerID) {
			out = append(out, *l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLessonRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	lesson, ok := f.lessons[id]
	if !ok {
		return domain.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		lesson.Name = v.(string)
	}
	if v, ok := fields["video_link"]; ok {
		lesson.VideoLink = v.(string)
	}
	return nil
}

func (f *fakeLessonRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.lessons[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeLessonRepo) MarkNotified(_ context.Context, id uuid.UUID, now time.Time) error {
	lesson, ok := f.lessons[id]
	if !ok {
		return domain.ErrNotFound
	}
	if lesson.LastNotifiedAt == nil || lesson.LastNotifiedAt.Before(now) {
		lesson.LastNotifiedAt = &now
	}
	return nil
}

type fakeSubscriptionRepo struct {
	pairs map[[2]uuid.UUID]bool
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{pairs: map[[2]uuid.UUID]bool{}}
}

func (f *fakeSubscriptionRepo) Toggle(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	key := [2]uuid.UUID{userID, courseID}
	if f.pairs[key] {
		delete(f.pairs, key)
		return false, nil
	}
	f.pairs[key] = true
	return true, nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID]*domain.Payment{}}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) List(_ context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if filter.Method != "" && p.Method != filter.Method {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// stubGateway считает вызовы и отдаёт фиксированную сессию.
type stubGateway struct {
	productCalls  int
	priceCalls    int
	sessionCalls  int
	retrieveCalls int

	lastProductName string
	lastAmountMinor int

	failAt string // "product" | "price" | "session"
}

func (g *stubGateway) calls() int {
	return g.productCalls + g.priceCalls + g.sessionCalls + g.retrieveCalls
}

func (g *stubGateway) CreateProduct(_ context.Context, name string) (string, error) {
	g.productCalls++
	g.lastProductName = name
	if g.failAt == "product" {
		return "", context.DeadlineExceeded
	}
	return "prod_1", nil
}

func (g *stubGateway) CreatePrice(_ context.Context, amountMinor int, currency, productID string) (string, error) {
	g.priceCalls++
	g.lastAmountMinor = amountMinor
	if g.failAt == "price" {
		return "", context.DeadlineExceeded
	}
	return "price_1", nil
}

func (g *stubGateway) CreateSession(_ context.Context, priceID string) (gateway.CheckoutSession, error) {
	g.sessionCalls++
	if g.failAt == "session" {
		return gateway.CheckoutSession{}, context.DeadlineExceeded
	}
	return gateway.CheckoutSession{ID: "sess_1", URL: "http://pay/sess_1", Method: "card"}, nil
}

func (g *stubGateway) RetrieveSession(_ context.Context, sessionID string) (gateway.SessionStatus, error) {
	g.retrieveCalls++
	return gateway.SessionStatus{PaymentStatus: "paid", Status: "complete"}, nil
}

type recordingDispatcher struct {
	calls    int
	subjects []string
	emails   [][]string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, subject string, emails []string) error {
	d.calls++
	d.subjects = append(d.subjects, subject)
	d.emails = append(d.emails, emails)
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/gateway"
	"eduplatform/internal/infrastructure/repository"

	"github.com/google/uuid"
)

const paymentCurrency = "rub"

// Gateway — внешний платёжный шлюз: продукт, цена, сессия оплаты.
type Gateway interface {
	CreateProduct(ctx context.Context, name string) (string, error)
	CreatePrice(ctx context.Context, amountMinor int, currency, productID string) (string, error)
	CreateSession(ctx context.Context, priceID string) (gateway.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (gateway.SessionStatus, error)
}

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error)
}

type PaymentUseCase struct {
	payments PaymentRepo
	courses  CourseRepo
	lessons  LessonRepo
	gateway  Gateway
	now      func() time.Time
}

func NewPaymentUseCase(payments PaymentRepo, courses CourseRepo, lessons LessonRepo, gw Gateway) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, courses: courses, lessons: lessons, gateway: gw, now: time.Now}
}

type CreatePaymentInput struct {
	Summ     int
	Method   string
	CourseID *uuid.UUID
	LessonID *uuid.UUID
}

// CreatePayment проводит платёж через шлюз: продукт -> цена -> сессия,
// и только после успешной сессии пишет строку в базу. Любая ошибка шлюза
// обрывает цепочку, частичного состояния не остаётся.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, userID uuid.UUID, in CreatePaymentInput) (*domain.Payment, error) {
	payment := &domain.Payment{
		UserID:   userID,
		Summ:     in.Summ,
		Method:   in.Method,
		CourseID: in.CourseID,
		LessonID: in.LessonID,
	}

	// Оплачивается ровно одно: курс или урок
	if (in.CourseID == nil) == (in.LessonID == nil) {
		return nil, domain.ErrInvalidTarget
	}

	label, err := uc.resolveLabel(ctx, in)
	if err != nil {
		return nil, err
	}

	productID, err := uc.gateway.CreateProduct(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("%w: create product: %v", domain.ErrPaymentGateway, err)
	}
	priceID, err := uc.gateway.CreatePrice(ctx, in.Summ*100, paymentCurrency, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: create price: %v", domain.ErrPaymentGateway, err)
	}
	session, err := uc.gateway.CreateSession(ctx, priceID)
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", domain.ErrPaymentGateway, err)
	}

	now := uc.now()
	payment.SessionID = &session.ID
	payment.PaymentLink = &session.URL
	if session.Method != "" {
		payment.PaymentMethod = &session.Method
	}
	payment.Date = &now

	if err := uc.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (uc *PaymentUseCase) resolveLabel(ctx context.Context, in CreatePaymentInput) (string, error) {
	if in.CourseID != nil {
		course, err := uc.courses.GetByID(ctx, *in.CourseID)
		if err != nil {
			return "", err
		}
		return course.Name, nil
	}
	lesson, err := uc.lessons.GetByID(ctx, *in.LessonID)
	if err != nil {
		return "", err
	}
	return lesson.Name, nil
}

func (uc *PaymentUseCase) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	return uc.payments.List(ctx, filter)
}

func (uc *PaymentUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return uc.payments.GetByID(ctx, id)
}

func (uc *PaymentUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	return uc.payments.ListByUser(ctx, userID)
}

type PaymentStatus struct {
	PaymentStatus string
	Status        string
}

// GetStatus спрашивает шлюз о состоянии сессии оплаты.
func (uc *PaymentUseCase) GetStatus(ctx context.Context, id uuid.UUID) (PaymentStatus, error) {
	payment, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return PaymentStatus{}, err
	}
	if payment.SessionID == nil {
		return PaymentStatus{}, domain.ErrNotFound
	}
	status, err := uc.gateway.RetrieveSession(ctx, *payment.SessionID)
	if err != nil {
		return PaymentStatus{}, fmt.Errorf("%w: retrieve session: %v", domain.ErrPaymentGateway, err)
	}
	return PaymentStatus{PaymentStatus: status.PaymentStatus, Status: status.Status}, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MethodCash     = "cash"
	MethodCashless = "cashless"
)

type Payment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Сумма в целых рублях, в копейки переводим только для шлюза
	Summ   int    `gorm:"not null"`
	Method string `gorm:"not null;size:20"`

	// Оплачен ровно один из двух: курс или урок
	CourseID *uuid.UUID `gorm:"type:uuid;index"`
	LessonID *uuid.UUID `gorm:"type:uuid;index"`

	SessionID     *string
	PaymentLink   *string
	PaymentMethod *string `gorm:"size:30"`

	Date *time.Time

	CreatedAt time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null;size:150"`
	Description string
	Preview     *string

	// Владелец может отсутствовать (курс без автора)
	OwnerID *uuid.UUID `gorm:"type:uuid;index"`

	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`

	// Когда подписчикам последний раз уходила рассылка об обновлении
	LastNotifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null;size:150"`
	Description string
	Preview     *string
	VideoLink   string `gorm:"not null"`

	OwnerID *uuid.UUID `gorm:"type:uuid;index"`

	LastNotifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course"`

	CreatedAt time.Time
}

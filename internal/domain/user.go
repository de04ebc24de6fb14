package domain

import (
	"time"

	"github.com/google/uuid"
)

const RoleModerator = "moderator"

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null;size:50"`
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"uniqueIndex;not null;size:100"`
	Password string    `gorm:"not null"`
	Phone    *string   `gorm:"size:30"`
	City     *string   `gorm:"size:100"`
	Avatar   *string

	Roles []Role `gorm:"many2many:user_roles"`

	IsActive  bool `gorm:"default:true"`
	LastLogin *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

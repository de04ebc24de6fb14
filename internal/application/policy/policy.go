// Package policy решает, кому какие действия над курсами и уроками разрешены.
// Роли снимаются с токена один раз при аутентификации, поэтому все проверки
// здесь чистые: никаких походов в базу.
package policy

import (
	"eduplatform/internal/domain"

	"github.com/google/uuid"
)

type Principal struct {
	ID    uuid.UUID
	Email string
	Roles map[string]struct{}
}

func NewPrincipal(id uuid.UUID, email string, roles []string) Principal {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Principal{ID: id, Email: email, Roles: set}
}

func (p Principal) HasRole(name string) bool {
	_, ok := p.Roles[name]
	return ok
}

// Context — всё, что нужно правилу для решения.
type Context struct {
	Actor Principal
	// Владелец ресурса; nil, если у ресурса нет владельца
	OwnerID *uuid.UUID
}

type Rule func(Context) bool

func And(rules ...Rule) Rule {
	return func(c Context) bool {
		for _, r := range rules {
			if !r(c) {
				return false
			}
		}
		return true
	}
}

func Or(rules ...Rule) Rule {
	return func(c Context) bool {
		for _, r := range rules {
			if r(c) {
				return true
			}
		}
		return false
	}
}

func Not(rule Rule) Rule {
	return func(c Context) bool {
		return !rule(c)
	}
}

func IsModerator(c Context) bool {
	return c.Actor.HasRole(domain.RoleModerator)
}

func IsOwner(c Context) bool {
	return c.OwnerID != nil && *c.OwnerID == c.Actor.ID
}

type Action string

const (
	CourseView   Action = "course.view"
	CourseCreate Action = "course.create"
	CourseUpdate Action = "course.update"
	CourseDelete Action = "course.delete"
	LessonView   Action = "lesson.view"
	LessonCreate Action = "lesson.create"
	LessonUpdate Action = "lesson.update"
	LessonDelete Action = "lesson.delete"
)

var rules = map[Action]Rule{
	CourseView:   Or(IsModerator, IsOwner),
	CourseCreate: Not(IsModerator),
	CourseUpdate: Or(IsModerator, IsOwner),
	CourseDelete: IsOwner,
	LessonView:   Or(IsModerator, IsOwner),
	LessonCreate: Not(IsModerator),
	LessonUpdate: Or(IsModerator, IsOwner),
	LessonDelete: IsOwner,
}

// Decide возвращает ErrForbidden, если действие не разрешено.
func Decide(actor Principal, action Action, ownerID *uuid.UUID) error {
	rule, ok := rules[action]
	if !ok {
		return domain.ErrForbidden
	}
	if !rule(Context{Actor: actor, OwnerID: ownerID}) {
		return domain.ErrForbidden
	}
	return nil
}

// Scope сужает списочные выборки: модератор видит всё, остальные — только своё.
type Scope struct {
	All     bool
	OwnerID uuid.UUID
}

func ListScope(actor Principal) Scope {
	if actor.HasRole(domain.RoleModerator) {
		return Scope{All: true}
	}
	return Scope{OwnerID: actor.ID}
}

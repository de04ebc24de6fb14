package handlers

import (
	"time"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
)

type lessonResponse struct {
	ID          uuid.UUID  `json:"id"`
	CourseID    uuid.UUID  `json:"course"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Preview     *string    `json:"preview"`
	VideoLink   string     `json:"video_link"`
	Owner       *uuid.UUID `json:"user"`
}

func toLessonResponse(l domain.Lesson) lessonResponse {
	return lessonResponse{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Name:        l.Name,
		Description: l.Description,
		Preview:     l.Preview,
		VideoLink:   l.VideoLink,
		Owner:       l.OwnerID,
	}
}

type courseResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Preview      *string          `json:"preview"`
	Owner        *uuid.UUID       `json:"user"`
	LessonsCount int              `json:"lessons_count"`
	Lessons      []lessonResponse `json:"lessons"`
}

func toCourseResponse(course domain.Course) courseResponse {
	lessons := make([]lessonResponse, 0, len(course.Lessons))
	for _, l := range course.Lessons {
		lessons = append(lessons, toLessonResponse(l))
	}
	return courseResponse{
		ID:           course.ID,
		Name:         course.Name,
		Description:  course.Description,
		Preview:      course.Preview,
		Owner:        course.OwnerID,
		LessonsCount: len(course.Lessons),
		Lessons:      lessons,
	}
}

type paymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user"`
	Summ          int        `json:"summ"`
	Method        string     `json:"method"`
	CourseID      *uuid.UUID `json:"course"`
	LessonID      *uuid.UUID `json:"lesson"`
	SessionID     *string    `json:"session_id"`
	PaymentLink   *string    `json:"payment_link"`
	PaymentMethod *string    `json:"payment_method"`
	Date          *time.Time `json:"date"`
}

func toPaymentResponse(p domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Summ:          p.Summ,
		Method:        p.Method,
		CourseID:      p.CourseID,
		LessonID:      p.LessonID,
		SessionID:     p.SessionID,
		PaymentLink:   p.PaymentLink,
		PaymentMethod: p.PaymentMethod,
		Date:          p.Date,
	}
}

// Чужой профиль: только публичные поля.
type userPublicResponse struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Phone  *string   `json:"phone"`
	City   *string   `json:"city"`
	Avatar *string   `json:"avatar"`
}

func toUserPublicResponse(u domain.User) userPublicResponse {
	return userPublicResponse{ID: u.ID, Email: u.Email, Phone: u.Phone, City: u.City, Avatar: u.Avatar}
}

// Свой профиль: плюс роли, активность и история платежей.
type userSelfResponse struct {
	ID        uuid.UUID         `json:"id"`
	Email     string            `json:"email"`
	Phone     *string           `json:"phone"`
	City      *string           `json:"city"`
	Avatar    *string           `json:"avatar"`
	Roles     []string          `json:"roles"`
	IsActive  bool              `json:"is_active"`
	LastLogin *time.Time        `json:"last_login"`
	Payments  []paymentResponse `json:"payments"`
}

func toUserSelfResponse(u domain.User, payments []domain.Payment) userSelfResponse {
	ps := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		ps = append(ps, toPaymentResponse(p))
	}
	return userSelfResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		City:      u.City,
		Avatar:    u.Avatar,
		Roles:     u.RoleNames(),
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		Payments:  ps,
	}
}

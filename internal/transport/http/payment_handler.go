package handlers

import (
	"net/http"

	"eduplatform/internal/application/usecase"
	"eduplatform/internal/infrastructure/repository"
	"eduplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	payments *usecase.PaymentUseCase
}

func NewPaymentHandler(payments *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// GET /payment/?course=&lesson=&method=&ordering=date|-date
func (h *PaymentHandler) List(c *gin.Context) {
	filter := repository.PaymentFilter{
		Method:   c.Query("method"),
		DateDesc: c.Query("ordering") == "-date",
	}
	if raw := c.Query("course"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
			return
		}
		filter.CourseID = &id
	}
	if raw := c.Query("lesson"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
			return
		}
		filter.LessonID = &id
	}

	payments, err := h.payments.List(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// POST /payment/
func (h *PaymentHandler) Create(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Summ     int        `json:"summ" binding:"required,gt=0"`
		Method   string     `json:"method" binding:"required,oneof=cash cashless"`
		CourseID *uuid.UUID `json:"course"`
		LessonID *uuid.UUID `json:"lesson"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.payments.CreatePayment(c, actor.ID, usecase.CreatePaymentInput{
		Summ:     req.Summ,
		Method:   req.Method,
		CourseID: req.CourseID,
		LessonID: req.LessonID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

// GET /payment/:id/status/
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	status, err := h.payments.GetStatus(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_status": status.PaymentStatus,
		"status":         status.Status,
	})
}

package handlers

import (
	"net/http"

	"eduplatform/internal/application/usecase"
	"eduplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	users    *usecase.UserUseCase
	payments *usecase.PaymentUseCase
}

func NewUserHandler(users *usecase.UserUseCase, payments *usecase.PaymentUseCase) *UserHandler {
	return &UserHandler{users: users, payments: payments}
}

// POST /users/register/
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required,min=8"`
		Phone    *string `json:"phone"`
		City     *string `json:"city"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c, usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserPublicResponse(*user))
}

// POST /users/login/
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, err := h.users.Login(c, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// POST /users/token/refresh/
func (h *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, err := h.users.Refresh(c, req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// GET /users/
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]userPublicResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPublicResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /users/view/:id/ — свой профиль полный, чужой урезанный
func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	user, err := h.users.Get(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if actor.ID == user.ID {
		payments, err := h.payments.ListByUser(c, user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserSelfResponse(*user, payments))
		return
	}
	c.JSON(http.StatusOK, toUserPublicResponse(*user))
}

// PATCH /users/update/:id/
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req struct {
		Phone  *string `json:"phone"`
		City   *string `json:"city"`
		Avatar *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c, actor, id, usecase.UpdateUserInput{
		Phone:  req.Phone,
		City:   req.City,
		Avatar: req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserPublicResponse(*user))
}

// DELETE /users/delete/:id/
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.users.Delete(c, actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

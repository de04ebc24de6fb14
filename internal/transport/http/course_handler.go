package handlers

import (
	"net/http"

	"eduplatform/internal/application/usecase"
	"eduplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courses *usecase.CourseUseCase
	subs    *usecase.SubscriptionUseCase
}

func NewCourseHandler(courses *usecase.CourseUseCase, subs *usecase.SubscriptionUseCase) *CourseHandler {
	return &CourseHandler{courses: courses, subs: subs}
}

// GET /course/
func (h *CourseHandler) List(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	offset, limit := pageParams(c)

	courses, total, err := h.courses.List(c, actor, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	results := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		results = append(results, toCourseResponse(course))
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "results": results})
}

// GET /course/:id/
func (h *CourseHandler) Get(c *gin.Context) {
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

	course, err := h.courses.Get(c, actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(*course))
}

// POST /course/
func (h *CourseHandler) Create(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required,max=150"`
		Description string  `json:"description"`
		Preview     *string `json:"preview"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.courses.Create(c, actor, usecase.CreateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Preview:     req.Preview,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCourseResponse(*course))
}

// PATCH /course/:id/
func (h *CourseHandler) Update(c *gin.Context) {
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
		Name        *string `json:"name" binding:"omitempty,max=150"`
		Description *string `json:"description"`
		Preview     *string `json:"preview"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.courses.Update(c, actor, id, usecase.UpdateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Preview:     req.Preview,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(*course))
}

// DELETE /course/:id/
func (h *CourseHandler) Delete(c *gin.Context) {
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

	if err := h.courses.Delete(c, actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /course/:id/subscribe/
func (h *CourseHandler) Subscribe(c *gin.Context) {
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

	message, err := h.subs.Toggle(c, actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

package handlers

import (
	"net/http"

	"eduplatform/internal/application/usecase"
	"eduplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonHandler struct {
	lessons *usecase.LessonUseCase
}

func NewLessonHandler(lessons *usecase.LessonUseCase) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// GET /lesson/
func (h *LessonHandler) List(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	offset, limit := pageParams(c)

	lessons, total, err := h.lessons.List(c, actor, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	results := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		results = append(results, toLessonResponse(l))
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "results": results})
}

// GET /lesson/:id/
func (h *LessonHandler) Get(c *gin.Context) {
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

	lesson, err := h.lessons.Get(c, actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLessonResponse(*lesson))
}

// POST /lesson/create/
func (h *LessonHandler) Create(c *gin.Context) {
	actor, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name        string    `json:"name" binding:"required,max=150"`
		Description string    `json:"description"`
		Preview     *string   `json:"preview"`
		VideoLink   string    `json:"video_link" binding:"required,url"`
		CourseID    uuid.UUID `json:"course" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.lessons.Create(c, actor, usecase.CreateLessonInput{
		Name:        req.Name,
		Description: req.Description,
		Preview:     req.Preview,
		VideoLink:   req.VideoLink,
		CourseID:    req.CourseID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLessonResponse(*lesson))
}

// PATCH /lesson/update/:id/
func (h *LessonHandler) Update(c *gin.Context) {
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
		VideoLink   *string `json:"video_link" binding:"omitempty,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.lessons.Update(c, actor, id, usecase.UpdateLessonInput{
		Name:        req.Name,
		Description: req.Description,
		Preview:     req.Preview,
		VideoLink:   req.VideoLink,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLessonResponse(*lesson))
}

// DELETE /lesson/delete/:id/
func (h *LessonHandler) Delete(c *gin.Context) {
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

	if err := h.lessons.Delete(c, actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

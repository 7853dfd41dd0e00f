package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

type CoachHandler struct {
	coaches *service.CoachService
}

func NewCoachHandler(coaches *service.CoachService) *CoachHandler {
	return &CoachHandler{coaches: coaches}
}

type coachRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
}

// GET /api/coaches
func (h *CoachHandler) List(c *gin.Context) {
	coaches, err := h.coaches.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coaches)
}

// GET /api/coaches/:id
func (h *CoachHandler) Get(c *gin.Context) {
	coach, err := h.coaches.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coach)
}

// POST /api/coaches
func (h *CoachHandler) Create(c *gin.Context) {
	var in coachRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coach, err := h.coaches.Create(c.Request.Context(), in.Name, in.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coach)
}

// PUT /api/coaches/:id
func (h *CoachHandler) Update(c *gin.Context) {
	var in coachRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coach, err := h.coaches.Update(c.Request.Context(), c.Param("id"), in.Name, in.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coach)
}

// DELETE /api/coaches/:id
func (h *CoachHandler) Delete(c *gin.Context) {
	if err := h.coaches.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

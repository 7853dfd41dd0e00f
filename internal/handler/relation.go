package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

type RelationHandler struct {
	coaches *service.CoachService
}

func NewRelationHandler(coaches *service.CoachService) *RelationHandler {
	return &RelationHandler{coaches: coaches}
}

// GET /api/coach-student-relations
func (h *RelationHandler) List(c *gin.Context) {
	relations, err := h.coaches.ListRelations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, relations)
}

// POST /api/coach-student-relations
func (h *RelationHandler) Create(c *gin.Context) {
	var in struct {
		CoachID   string `json:"coach_id" binding:"required"`
		StudentID string `json:"student_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relation, err := h.coaches.CreateRelation(c.Request.Context(), in.CoachID, in.StudentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, relation)
}

// DELETE /api/coach-student-relations/:coach_id/:student_id
func (h *RelationHandler) Delete(c *gin.Context) {
	err := h.coaches.DeleteRelation(c.Request.Context(), c.Param("coach_id"), c.Param("student_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

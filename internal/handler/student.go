package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

type StudentHandler struct {
	students *service.StudentService
}

func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

type studentRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	MemberID string `json:"member_id" binding:"required"`
	Notes    string `json:"notes"`
}

// GET /api/students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var in studentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.students.Create(c.Request.Context(), service.StudentInput{
		Name:     in.Name,
		Phone:    in.Phone,
		MemberID: in.MemberID,
		Notes:    in.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var in studentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.students.Update(c.Request.Context(), c.Param("id"), service.StudentInput{
		Name:     in.Name,
		Phone:    in.Phone,
		MemberID: in.MemberID,
		Notes:    in.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

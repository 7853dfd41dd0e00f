package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

type UnavailableHandler struct {
	students *service.StudentService
}

func NewUnavailableHandler(students *service.StudentService) *UnavailableHandler {
	return &UnavailableHandler{students: students}
}

// GET /api/student-unavailable-dates?student_id=...
func (h *UnavailableHandler) List(c *gin.Context) {
	dates, err := h.students.ListUnavailableDates(c.Request.Context(), c.Query("student_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

// GET /api/student-unavailable-dates/:id
func (h *UnavailableHandler) Get(c *gin.Context) {
	date, err := h.students.GetUnavailableDate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, date)
}

// PUT /api/student-unavailable-dates
// Заменяет весь набор blackout-дат ученика целиком
func (h *UnavailableHandler) ReplaceAll(c *gin.Context) {
	var in struct {
		StudentID string    `json:"student_id"`
		Dates     *[]string `json:"dates"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Dates == nil {
		respondError(c, service.ErrInvalidDatesPayload)
		return
	}

	count, err := h.students.ReplaceUnavailableDates(c.Request.Context(), in.StudentID, *in.Dates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": count})
}

// PUT /api/student-unavailable-dates/:id
func (h *UnavailableHandler) Update(c *gin.Context) {
	var in struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := h.students.UpdateUnavailableDate(c.Request.Context(), c.Param("id"), in.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, date)
}

// DELETE /api/student-unavailable-dates/:id
func (h *UnavailableHandler) Delete(c *gin.Context) {
	if err := h.students.DeleteUnavailableDate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

type LessonHandler struct {
	lessons *service.LessonService
}

func NewLessonHandler(lessons *service.LessonService) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

type lessonRequest struct {
	CoachID   string `json:"coach_id" binding:"required"`
	StudentID string `json:"student_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // RFC3339
	EndTime   string `json:"end_time" binding:"required"`   // RFC3339
}

func (in *lessonRequest) toInput() (service.LessonInput, error) {
	start, err := parseRFC3339UTC(in.StartTime)
	if err != nil {
		return service.LessonInput{}, err
	}
	end, err := parseRFC3339UTC(in.EndTime)
	if err != nil {
		return service.LessonInput{}, err
	}
	return service.LessonInput{
		CoachID:   in.CoachID,
		StudentID: in.StudentID,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// GET /api/lessons?year=2025&month=6
func (h *LessonHandler) List(c *gin.Context) {
	year, month, ok := parseMonthQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must be valid integers, month 1-12"})
		return
	}

	lessons, err := h.lessons.List(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GET /api/lessons/:id
func (h *LessonHandler) Get(c *gin.Context) {
	lesson, err := h.lessons.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// POST /api/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var in lessonRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := in.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time and end_time must be RFC3339"})
		return
	}

	lesson, err := h.lessons.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// PUT /api/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	var in lessonRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := in.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time and end_time must be RFC3339"})
		return
	}

	lesson, err := h.lessons.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DELETE /api/lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	if err := h.lessons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/stats/unassigned-students?year=2025&month=6
func (h *LessonHandler) UnassignedStudents(c *gin.Context) {
	year, month, ok := parseMonthQuery(c)
	if !ok || year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required, month 1-12"})
		return
	}

	students, err := h.lessons.UnassignedStudentsForMonth(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    int(month),
		"students": students,
	})
}

// GET /api/stats/lesson-counts?year=2025&month=6
func (h *LessonHandler) LessonCounts(c *gin.Context) {
	year, month, ok := parseMonthQuery(c)
	if !ok || year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required, month 1-12"})
		return
	}

	coachCounts, studentCounts, err := h.lessons.LessonCountsForMonth(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    int(month),
		"coaches":  coachCounts,
		"students": studentCounts,
	})
}

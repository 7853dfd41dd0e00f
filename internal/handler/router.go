package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
	"go.uber.org/zap"
)

// NewRouter собирает gin-роутер со всеми ресурсами API
func NewRouter(
	env string,
	coachService *service.CoachService,
	studentService *service.StudentService,
	lessonService *service.LessonService,
	slotService *service.SlotService,
	logger *zap.Logger,
) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(RateLimit(NewRateLimiter(50, 100)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	coaches := NewCoachHandler(coachService)
	students := NewStudentHandler(studentService)
	lessons := NewLessonHandler(lessonService)
	slots := NewSlotHandler(slotService)
	unavailable := NewUnavailableHandler(studentService)
	relations := NewRelationHandler(coachService)

	api := r.Group("/api")
	{
		api.GET("/coaches", coaches.List)
		api.POST("/coaches", coaches.Create)
		api.GET("/coaches/:id", coaches.Get)
		api.PUT("/coaches/:id", coaches.Update)
		api.DELETE("/coaches/:id", coaches.Delete)

		api.GET("/students", students.List)
		api.POST("/students", students.Create)
		api.GET("/students/:id", students.Get)
		api.PUT("/students/:id", students.Update)
		api.DELETE("/students/:id", students.Delete)

		api.GET("/lessons", lessons.List)
		api.POST("/lessons", lessons.Create)
		api.GET("/lessons/:id", lessons.Get)
		api.PUT("/lessons/:id", lessons.Update)
		api.DELETE("/lessons/:id", lessons.Delete)

		api.GET("/coach-available-slots", slots.List)
		api.POST("/coach-available-slots", slots.Create)
		api.GET("/coach-available-slots/:id", slots.Get)
		api.PUT("/coach-available-slots/:id", slots.Update)
		api.DELETE("/coach-available-slots/:id", slots.Delete)

		api.GET("/student-unavailable-dates", unavailable.List)
		api.PUT("/student-unavailable-dates", unavailable.ReplaceAll)
		api.GET("/student-unavailable-dates/:id", unavailable.Get)
		api.PUT("/student-unavailable-dates/:id", unavailable.Update)
		api.DELETE("/student-unavailable-dates/:id", unavailable.Delete)

		api.GET("/coach-student-relations", relations.List)
		api.POST("/coach-student-relations", relations.Create)
		api.DELETE("/coach-student-relations/:coach_id/:student_id", relations.Delete)

		api.GET("/stats/unassigned-students", lessons.UnassignedStudents)
		api.GET("/stats/lesson-counts", lessons.LessonCounts)
	}

	return r
}

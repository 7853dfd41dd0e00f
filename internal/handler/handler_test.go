package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/planbar/planbar-api/internal/app"
	"github.com/planbar/planbar-api/internal/handler"
	"github.com/planbar/planbar-api/internal/repository"
	"github.com/planbar/planbar-api/internal/service"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	logger := zap.NewNop()

	migrator, err := app.NewMigrator(pool, "../../db/migrations", logger)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	migrator.Close()

	coachRepo := repository.NewCoachRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	unavailableRepo := repository.NewUnavailableDateRepository(pool)
	relationRepo := repository.NewRelationRepository(pool)

	coachService := service.NewCoachService(coachRepo, relationRepo, logger)
	studentService := service.NewStudentService(studentRepo, unavailableRepo, logger)
	slotService := service.NewSlotService(slotRepo, logger)
	lessonService := service.NewLessonService(
		lessonRepo, coachRepo, studentRepo, unavailableRepo, nil, time.UTC, logger)

	return handler.NewRouter("production", coachService, studentService, lessonService, slotService, logger)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID == "" {
		t.Fatal("empty id in response")
	}
	return body.ID
}

func createCoach(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/coaches", map[string]string{
		"name": fmt.Sprintf("coach-%d", rand.Int63()),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create coach: %d %s", rec.Code, rec.Body.String())
	}
	return decodeID(t, rec)
}

func createStudent(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/students", map[string]string{
		"name":      fmt.Sprintf("student-%d", rand.Int63()),
		"phone":     "0900000000",
		"member_id": fmt.Sprintf("m-%d", rand.Int63()),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create student: %d %s", rec.Code, rec.Body.String())
	}
	return decodeID(t, rec)
}

// Случайное будущее время, выровненное по часу: уроки разных прогонов
// тестов не пересекаются, потому что тренер и ученик всегда свежие.
func futureHour() time.Time {
	return time.Now().UTC().Truncate(time.Hour).
		Add(time.Duration(24+rand.Intn(24*365)) * time.Hour)
}

func lessonBody(coachID, studentID string, start, end time.Time) map[string]string {
	return map[string]string{
		"coach_id":   coachID,
		"student_id": studentID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}
}

func TestCoachCRUD(t *testing.T) {
	router := setup(t)

	rec := doJSON(t, router, "POST", "/api/coaches", map[string]string{
		"name":  "Coach Wang",
		"notes": "mornings only",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	id := decodeID(t, rec)

	rec = doJSON(t, router, "GET", "/api/coaches/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}

	rec = doJSON(t, router, "PUT", "/api/coaches/"+id, map[string]string{"name": "Coach Wang Jr"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "DELETE", "/api/coaches/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/coaches/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d, want 404", rec.Code)
	}
}

func TestCreateCoachValidation(t *testing.T) {
	router := setup(t)

	rec := doJSON(t, router, "POST", "/api/coaches", map[string]string{"notes": "no name"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestLessonConflicts(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	s1 := createStudent(t, router)
	s2 := createStudent(t, router)

	start := futureHour()

	rec := doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, s1, start, start.Add(time.Hour)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first lesson: %d %s", rec.Code, rec.Body.String())
	}

	// Тот же тренер, другой ученик, пересекающийся интервал
	rec = doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, s2, start.Add(30*time.Minute), start.Add(90*time.Minute)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("coach overlap: %d, want 409", rec.Code)
	}

	// Смежный интервал не конфликтует
	rec = doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, s2, start.Add(time.Hour), start.Add(2*time.Hour)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("adjacent lesson: %d %s", rec.Code, rec.Body.String())
	}
}

func TestLessonValidation(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	studentID := createStudent(t, router)

	start := futureHour()

	// Конец раньше начала
	rec := doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, studentID, start, start.Add(-time.Hour)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted interval: %d, want 400", rec.Code)
	}

	// Меньше часа
	rec = doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, studentID, start, start.Add(30*time.Minute)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short lesson: %d, want 400", rec.Code)
	}

	// Несуществующий тренер
	rec = doJSON(t, router, "POST", "/api/lessons",
		lessonBody("00000000-0000-0000-0000-000000000000", studentID, start, start.Add(time.Hour)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown coach: %d, want 404", rec.Code)
	}
}

func TestLessonUpdateSelfExclusion(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	studentID := createStudent(t, router)

	start := futureHour()
	rec := doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, studentID, start, start.Add(time.Hour)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	id := decodeID(t, rec)

	// Обновление на тот же интервал не должно конфликтовать с самим собой
	rec = doJSON(t, router, "PUT", "/api/lessons/"+id,
		lessonBody(coachID, studentID, start, start.Add(time.Hour)))
	if rec.Code != http.StatusOK {
		t.Fatalf("self update: %d %s", rec.Code, rec.Body.String())
	}
}

func TestLessonBlackoutRejection(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	studentID := createStudent(t, router)

	start := futureHour()
	day := start.Format("2006-01-02")

	rec := doJSON(t, router, "PUT", "/api/student-unavailable-dates", map[string]any{
		"student_id": studentID,
		"dates":      []string{day},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("replace blackouts: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, studentID, start, start.Add(time.Hour)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("blackout booking: %d, want 409", rec.Code)
	}
}

func TestReplaceBlackoutsWholesale(t *testing.T) {
	router := setup(t)
	studentID := createStudent(t, router)

	rec := doJSON(t, router, "PUT", "/api/student-unavailable-dates", map[string]any{
		"student_id": studentID,
		"dates":      []string{"2025-06-10", "2025-06-12"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("first replace: %d %s", rec.Code, rec.Body.String())
	}

	// Полная замена: старые даты должны исчезнуть
	rec = doJSON(t, router, "PUT", "/api/student-unavailable-dates", map[string]any{
		"student_id": studentID,
		"dates":      []string{"2025-07-01"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("second replace: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/api/student-unavailable-dates?student_id="+studentID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}

	var dates []struct {
		Date time.Time `json:"date"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&dates); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("got %d dates, want 1", len(dates))
	}
	if got := dates[0].Date.Format("2006-01-02"); got != "2025-07-01" {
		t.Errorf("got %s, want 2025-07-01", got)
	}
}

func TestReplaceBlackoutsValidation(t *testing.T) {
	router := setup(t)
	studentID := createStudent(t, router)

	// Нет student_id
	rec := doJSON(t, router, "PUT", "/api/student-unavailable-dates", map[string]any{
		"dates": []string{"2025-06-10"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing student_id: %d, want 400", rec.Code)
	}

	// Мусор вместо даты
	rec = doJSON(t, router, "PUT", "/api/student-unavailable-dates", map[string]any{
		"student_id": studentID,
		"dates":      []string{"not-a-date"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: %d, want 400", rec.Code)
	}
}

func TestLessonMonthFilter(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	studentID := createStudent(t, router)

	start := futureHour()
	rec := doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, studentID, start, start.Add(time.Hour)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	id := decodeID(t, rec)

	path := fmt.Sprintf("/api/lessons?year=%d&month=%d", start.Year(), int(start.Month()))
	rec = doJSON(t, router, "GET", path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}

	var lessons []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&lessons); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, l := range lessons {
		if l.ID == id {
			found = true
		}
	}
	if !found {
		t.Error("lesson missing from its own month listing")
	}

	// В другом месяце урока быть не должно
	other := start.AddDate(0, 2, 0)
	path = fmt.Sprintf("/api/lessons?year=%d&month=%d", other.Year(), int(other.Month()))
	rec = doJSON(t, router, "GET", path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list other month: %d", rec.Code)
	}
	lessons = nil
	if err := json.NewDecoder(rec.Body).Decode(&lessons); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, l := range lessons {
		if l.ID == id {
			t.Error("lesson leaked into another month's listing")
		}
	}
}

func TestUnassignedStudentsStat(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	assigned := createStudent(t, router)
	unassigned := createStudent(t, router)

	start := futureHour()
	rec := doJSON(t, router, "POST", "/api/lessons",
		lessonBody(coachID, assigned, start, start.Add(time.Hour)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}

	path := fmt.Sprintf("/api/stats/unassigned-students?year=%d&month=%d", start.Year(), int(start.Month()))
	rec = doJSON(t, router, "GET", path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Students []struct {
			ID string `json:"id"`
		} `json:"students"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var sawAssigned, sawUnassigned bool
	for _, s := range body.Students {
		if s.ID == assigned {
			sawAssigned = true
		}
		if s.ID == unassigned {
			sawUnassigned = true
		}
	}
	if sawAssigned {
		t.Error("student with a lesson listed as unassigned")
	}
	if !sawUnassigned {
		t.Error("student without lessons missing from unassigned list")
	}
}

func TestRelations(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)
	studentID := createStudent(t, router)

	body := map[string]string{"coach_id": coachID, "student_id": studentID}

	rec := doJSON(t, router, "POST", "/api/coach-student-relations", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create relation: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "POST", "/api/coach-student-relations", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate relation: %d, want 409", rec.Code)
	}

	path := "/api/coach-student-relations/" + coachID + "/" + studentID
	rec = doJSON(t, router, "DELETE", path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete relation: %d", rec.Code)
	}

	rec = doJSON(t, router, "DELETE", path, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing relation: %d, want 404", rec.Code)
	}
}

func TestSlotCRUD(t *testing.T) {
	router := setup(t)
	coachID := createCoach(t, router)

	start := futureHour()
	rec := doJSON(t, router, "POST", "/api/coach-available-slots", map[string]string{
		"coach_id":   coachID,
		"date":       start.Format("2006-01-02"),
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(4 * time.Hour).Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create slot: %d %s", rec.Code, rec.Body.String())
	}
	id := decodeID(t, rec)

	rec = doJSON(t, router, "GET", "/api/coach-available-slots/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get slot: %d", rec.Code)
	}

	rec = doJSON(t, router, "DELETE", "/api/coach-available-slots/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete slot: %d", rec.Code)
	}
}

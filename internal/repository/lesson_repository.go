package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planbar/planbar-api/internal/model"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

const lessonColumns = `id, coach_id, student_id, start_time, end_time, created_at, updated_at`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.CoachID,
		&lesson.StudentID,
		&lesson.StartTime,
		&lesson.EndTime,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Create создаёт новый урок
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (id, coach_id, student_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		lesson.ID,
		lesson.CoachID,
		lesson.StudentID,
		lesson.StartTime,
		lesson.EndTime,
	).Scan(&lesson.CreatedAt, &lesson.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает урок по ID
func (r *LessonRepository) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// List получает все уроки
func (r *LessonRepository) List(ctx context.Context) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY start_time`

	return r.queryLessons(ctx, query)
}

// ListByRange получает уроки, начинающиеся в диапазоне [from, to] включительно.
// Фильтр по месяцу делается на стороне БД, чтобы не таскать всю историю.
func (r *LessonRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE start_time >= $1 AND start_time <= $2
		ORDER BY start_time
	`

	return r.queryLessons(ctx, query, from, to)
}

// ListByParticipants получает уроки тренера и/или ученика одним запросом.
// Это снимок для проверки конфликтов: оба множества читаются в одной выборке.
func (r *LessonRepository) ListByParticipants(ctx context.Context, coachID, studentID string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE coach_id = $1 OR student_id = $2
		ORDER BY start_time
	`

	return r.queryLessons(ctx, query, coachID, studentID)
}

// Update обновляет урок, возвращает false если урок не найден
func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) (bool, error) {
	query := `
		UPDATE lessons
		SET coach_id = $1, student_id = $2, start_time = $3, end_time = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.pool.Exec(
		ctx, query,
		lesson.CoachID,
		lesson.StudentID,
		lesson.StartTime,
		lesson.EndTime,
		lesson.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update lesson: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete удаляет урок, возвращает false если урок не найден
func (r *LessonRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM lessons WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *LessonRepository) queryLessons(ctx context.Context, query string, args ...any) ([]*model.Lesson, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

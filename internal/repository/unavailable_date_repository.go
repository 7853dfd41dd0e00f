package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planbar/planbar-api/internal/model"
)

type UnavailableDateRepository struct {
	pool *pgxpool.Pool
}

func NewUnavailableDateRepository(pool *pgxpool.Pool) *UnavailableDateRepository {
	return &UnavailableDateRepository{pool: pool}
}

// Create создаёт одну blackout-дату
func (r *UnavailableDateRepository) Create(ctx context.Context, date *model.StudentUnavailableDate) error {
	query := `
		INSERT INTO student_unavailable_dates (id, student_id, date)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, date.ID, date.StudentID, date.Date).
		Scan(&date.CreatedAt)
	if err != nil {
		return fmt.Errorf("create unavailable date: %w", err)
	}

	return nil
}

// GetByID получает blackout-дату по ID
func (r *UnavailableDateRepository) GetByID(ctx context.Context, id string) (*model.StudentUnavailableDate, error) {
	query := `
		SELECT id, student_id, date, created_at
		FROM student_unavailable_dates
		WHERE id = $1
	`

	var date model.StudentUnavailableDate
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&date.ID,
		&date.StudentID,
		&date.Date,
		&date.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get unavailable date by id: %w", err)
	}

	return &date, nil
}

// List получает blackout-даты, опционально только одного ученика
func (r *UnavailableDateRepository) List(ctx context.Context, studentID string) ([]*model.StudentUnavailableDate, error) {
	query := `
		SELECT id, student_id, date, created_at
		FROM student_unavailable_dates
		WHERE ($1 = '' OR student_id = $1)
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list unavailable dates: %w", err)
	}
	defer rows.Close()

	var dates []*model.StudentUnavailableDate
	for rows.Next() {
		var date model.StudentUnavailableDate
		err := rows.Scan(
			&date.ID,
			&date.StudentID,
			&date.Date,
			&date.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unavailable date: %w", err)
		}
		dates = append(dates, &date)
	}

	return dates, nil
}

// Update обновляет дату записи, возвращает false если запись не найдена
func (r *UnavailableDateRepository) Update(ctx context.Context, date *model.StudentUnavailableDate) (bool, error) {
	query := `
		UPDATE student_unavailable_dates
		SET date = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, date.Date, date.ID)
	if err != nil {
		return false, fmt.Errorf("update unavailable date: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete удаляет запись, возвращает false если запись не найдена
func (r *UnavailableDateRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM student_unavailable_dates WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete unavailable date: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ReplaceForStudent атомарно заменяет весь набор blackout-дат ученика.
// Удаление и вставка идут в одной транзакции: частичное применение
// невозможно, при любой ошибке всё откатывается.
func (r *UnavailableDateRepository) ReplaceForStudent(ctx context.Context, studentID string, dates []time.Time) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM student_unavailable_dates WHERE student_id = $1`, studentID)
	if err != nil {
		return 0, fmt.Errorf("delete unavailable dates: %w", err)
	}

	inserted := 0
	for _, d := range dates {
		_, err = tx.Exec(ctx,
			`INSERT INTO student_unavailable_dates (id, student_id, date) VALUES ($1, $2, $3)`,
			uuid.New().String(), studentID, d,
		)
		if err != nil {
			return 0, fmt.Errorf("insert unavailable date: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

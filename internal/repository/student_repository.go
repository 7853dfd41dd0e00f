package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planbar/planbar-api/internal/model"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// Create создаёт нового ученика
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (id, name, phone, member_id, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		student.ID,
		student.Name,
		student.Phone,
		student.MemberID,
		student.Notes,
	).Scan(&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает ученика по ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	query := `
		SELECT id, name, phone, member_id, notes, created_at, updated_at
		FROM students
		WHERE id = $1
	`

	var student model.Student
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Phone,
		&student.MemberID,
		&student.Notes,
		&student.CreatedAt,
		&student.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return &student, nil
}

// List получает всех учеников
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT id, name, phone, member_id, notes, created_at, updated_at
		FROM students
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Phone,
			&student.MemberID,
			&student.Notes,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	return students, nil
}

// Update обновляет ученика, возвращает false если ученик не найден
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) (bool, error) {
	query := `
		UPDATE students
		SET name = $1, phone = $2, member_id = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.pool.Exec(
		ctx, query,
		student.Name,
		student.Phone,
		student.MemberID,
		student.Notes,
		student.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update student: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete удаляет ученика, возвращает false если ученик не найден
func (r *StudentRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM students WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

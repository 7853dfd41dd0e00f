package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planbar/planbar-api/internal/model"
)

type CoachRepository struct {
	pool *pgxpool.Pool
}

func NewCoachRepository(pool *pgxpool.Pool) *CoachRepository {
	return &CoachRepository{pool: pool}
}

// Create создаёт нового тренера
func (r *CoachRepository) Create(ctx context.Context, coach *model.Coach) error {
	query := `
		INSERT INTO coaches (id, name, notes)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, coach.ID, coach.Name, coach.Notes).
		Scan(&coach.CreatedAt, &coach.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create coach: %w", err)
	}

	return nil
}

// GetByID получает тренера по ID
func (r *CoachRepository) GetByID(ctx context.Context, id string) (*model.Coach, error) {
	query := `
		SELECT id, name, notes, created_at, updated_at
		FROM coaches
		WHERE id = $1
	`

	var coach model.Coach
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&coach.ID,
		&coach.Name,
		&coach.Notes,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get coach by id: %w", err)
	}

	return &coach, nil
}

// List получает всех тренеров
func (r *CoachRepository) List(ctx context.Context) ([]*model.Coach, error) {
	query := `
		SELECT id, name, notes, created_at, updated_at
		FROM coaches
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	defer rows.Close()

	var coaches []*model.Coach
	for rows.Next() {
		var coach model.Coach
		err := rows.Scan(
			&coach.ID,
			&coach.Name,
			&coach.Notes,
			&coach.CreatedAt,
			&coach.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan coach: %w", err)
		}
		coaches = append(coaches, &coach)
	}

	return coaches, nil
}

// Update обновляет тренера, возвращает false если тренер не найден
func (r *CoachRepository) Update(ctx context.Context, coach *model.Coach) (bool, error) {
	query := `
		UPDATE coaches
		SET name = $1, notes = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, coach.Name, coach.Notes, coach.ID)
	if err != nil {
		return false, fmt.Errorf("update coach: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete удаляет тренера, возвращает false если тренер не найден
func (r *CoachRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM coaches WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete coach: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

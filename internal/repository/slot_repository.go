package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planbar/planbar-api/internal/model"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create создаёт новое окно доступности тренера
func (r *SlotRepository) Create(ctx context.Context, slot *model.CoachAvailableSlot) error {
	query := `
		INSERT INTO coach_available_slots (id, coach_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.ID,
		slot.CoachID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
	).Scan(&slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает окно по ID
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*model.CoachAvailableSlot, error) {
	query := `
		SELECT id, coach_id, date, start_time, end_time, created_at
		FROM coach_available_slots
		WHERE id = $1
	`

	var slot model.CoachAvailableSlot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.CoachID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// List получает все окна доступности
func (r *SlotRepository) List(ctx context.Context) ([]*model.CoachAvailableSlot, error) {
	query := `
		SELECT id, coach_id, date, start_time, end_time, created_at
		FROM coach_available_slots
		ORDER BY date, start_time
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.CoachAvailableSlot
	for rows.Next() {
		var slot model.CoachAvailableSlot
		err := rows.Scan(
			&slot.ID,
			&slot.CoachID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// Update обновляет окно, возвращает false если окно не найдено
func (r *SlotRepository) Update(ctx context.Context, slot *model.CoachAvailableSlot) (bool, error) {
	query := `
		UPDATE coach_available_slots
		SET coach_id = $1, date = $2, start_time = $3, end_time = $4
		WHERE id = $5
	`

	result, err := r.pool.Exec(
		ctx, query,
		slot.CoachID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update slot: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete удаляет окно, возвращает false если окно не найдено
func (r *SlotRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM coach_available_slots WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

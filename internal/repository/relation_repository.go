package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planbar/planbar-api/internal/model"
)

type RelationRepository struct {
	pool *pgxpool.Pool
}

func NewRelationRepository(pool *pgxpool.Pool) *RelationRepository {
	return &RelationRepository{pool: pool}
}

// Create создаёт связь тренер-ученик
func (r *RelationRepository) Create(ctx context.Context, relation *model.CoachStudentRelation) error {
	query := `
		INSERT INTO coach_student_relations (coach_id, student_id)
		VALUES ($1, $2)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, relation.CoachID, relation.StudentID).
		Scan(&relation.CreatedAt)
	if err != nil {
		return fmt.Errorf("create relation: %w", err)
	}

	return nil
}

// List получает все связи тренер-ученик
func (r *RelationRepository) List(ctx context.Context) ([]*model.CoachStudentRelation, error) {
	query := `
		SELECT coach_id, student_id, created_at
		FROM coach_student_relations
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	defer rows.Close()

	var relations []*model.CoachStudentRelation
	for rows.Next() {
		var relation model.CoachStudentRelation
		err := rows.Scan(&relation.CoachID, &relation.StudentID, &relation.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		relations = append(relations, &relation)
	}

	return relations, nil
}

// Delete удаляет связь по составному ключу, возвращает false если связи нет
func (r *RelationRepository) Delete(ctx context.Context, coachID, studentID string) (bool, error) {
	query := `DELETE FROM coach_student_relations WHERE coach_id = $1 AND student_id = $2`

	result, err := r.pool.Exec(ctx, query, coachID, studentID)
	if err != nil {
		return false, fmt.Errorf("delete relation: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

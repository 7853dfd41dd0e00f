package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/planbar/planbar-api/internal/model"
	"github.com/planbar/planbar-api/internal/repository"
	"github.com/planbar/planbar-api/internal/repository/base"
	"go.uber.org/zap"
)

type CoachService struct {
	coachRepo    *repository.CoachRepository
	relationRepo *repository.RelationRepository
	logger       *zap.Logger
}

func NewCoachService(
	coachRepo *repository.CoachRepository,
	relationRepo *repository.RelationRepository,
	logger *zap.Logger,
) *CoachService {
	return &CoachService{
		coachRepo:    coachRepo,
		relationRepo: relationRepo,
		logger:       logger,
	}
}

// Create создаёт тренера
func (s *CoachService) Create(ctx context.Context, name, notes string) (*model.Coach, error) {
	coach := &model.Coach{
		ID:    uuid.New().String(),
		Name:  name,
		Notes: notes,
	}

	if err := s.coachRepo.Create(ctx, coach); err != nil {
		return nil, err
	}

	s.logger.Info("Coach created",
		zap.String("coach_id", coach.ID),
		zap.String("name", coach.Name),
	)

	return coach, nil
}

// GetByID получает тренера по ID
func (s *CoachService) GetByID(ctx context.Context, id string) (*model.Coach, error) {
	coach, err := s.coachRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, ErrNotFound
	}
	return coach, nil
}

// List получает всех тренеров
func (s *CoachService) List(ctx context.Context) ([]*model.Coach, error) {
	return s.coachRepo.List(ctx)
}

// Update обновляет тренера
func (s *CoachService) Update(ctx context.Context, id, name, notes string) (*model.Coach, error) {
	coach := &model.Coach{ID: id, Name: name, Notes: notes}

	ok, err := s.coachRepo.Update(ctx, coach)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return s.coachRepo.GetByID(ctx, id)
}

// Delete удаляет тренера. Тренер с запланированными уроками не удаляется
func (s *CoachService) Delete(ctx context.Context, id string) error {
	ok, err := s.coachRepo.Delete(ctx, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return ErrEntityReferenced
		}
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.logger.Info("Coach deleted", zap.String("coach_id", id))
	return nil
}

// ListRelations получает все связи тренер-ученик
func (s *CoachService) ListRelations(ctx context.Context) ([]*model.CoachStudentRelation, error) {
	return s.relationRepo.List(ctx)
}

// CreateRelation создаёт связь тренер-ученик
func (s *CoachService) CreateRelation(ctx context.Context, coachID, studentID string) (*model.CoachStudentRelation, error) {
	relation := &model.CoachStudentRelation{
		CoachID:   coachID,
		StudentID: studentID,
	}

	if err := s.relationRepo.Create(ctx, relation); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrRelationExists
		}
		if base.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("coach or student: %w", ErrNotFound)
		}
		return nil, err
	}

	return relation, nil
}

// DeleteRelation удаляет связь тренер-ученик
func (s *CoachService) DeleteRelation(ctx context.Context, coachID, studentID string) error {
	ok, err := s.relationRepo.Delete(ctx, coachID, studentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planbar/planbar-api/internal/model"
	"github.com/planbar/planbar-api/internal/repository"
	"github.com/planbar/planbar-api/internal/repository/base"
	"go.uber.org/zap"
)

// SlotInput входные данные для окна доступности тренера
type SlotInput struct {
	CoachID   string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

type SlotService struct {
	slotRepo *repository.SlotRepository
	logger   *zap.Logger
}

func NewSlotService(slotRepo *repository.SlotRepository, logger *zap.Logger) *SlotService {
	return &SlotService{slotRepo: slotRepo, logger: logger}
}

// Create создаёт окно доступности
func (s *SlotService) Create(ctx context.Context, input SlotInput) (*model.CoachAvailableSlot, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidInterval
	}

	slot := &model.CoachAvailableSlot{
		ID:        uuid.New().String(),
		CoachID:   input.CoachID,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		if base.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("coach %s: %w", input.CoachID, ErrNotFound)
		}
		return nil, err
	}

	s.logger.Info("Availability slot created",
		zap.String("slot_id", slot.ID),
		zap.String("coach_id", slot.CoachID),
	)

	return slot, nil
}

// GetByID получает окно по ID
func (s *SlotService) GetByID(ctx context.Context, id string) (*model.CoachAvailableSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	return slot, nil
}

// List получает все окна доступности
func (s *SlotService) List(ctx context.Context) ([]*model.CoachAvailableSlot, error) {
	return s.slotRepo.List(ctx)
}

// Update обновляет окно
func (s *SlotService) Update(ctx context.Context, id string, input SlotInput) (*model.CoachAvailableSlot, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidInterval
	}

	slot := &model.CoachAvailableSlot{
		ID:        id,
		CoachID:   input.CoachID,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}

	ok, err := s.slotRepo.Update(ctx, slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return s.slotRepo.GetByID(ctx, id)
}

// Delete удаляет окно
func (s *SlotService) Delete(ctx context.Context, id string) error {
	ok, err := s.slotRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planbar/planbar-api/internal/model"
	"github.com/planbar/planbar-api/internal/repository"
	"github.com/planbar/planbar-api/internal/repository/base"
	"go.uber.org/zap"
)

// StudentInput входные данные для создания/изменения ученика
type StudentInput struct {
	Name     string
	Phone    string
	MemberID string
	Notes    string
}

type StudentService struct {
	studentRepo     *repository.StudentRepository
	unavailableRepo *repository.UnavailableDateRepository
	logger          *zap.Logger
}

func NewStudentService(
	studentRepo *repository.StudentRepository,
	unavailableRepo *repository.UnavailableDateRepository,
	logger *zap.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:     studentRepo,
		unavailableRepo: unavailableRepo,
		logger:          logger,
	}
}

// Create создаёт ученика
func (s *StudentService) Create(ctx context.Context, input StudentInput) (*model.Student, error) {
	student := &model.Student{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Phone:    input.Phone,
		MemberID: input.MemberID,
		Notes:    input.Notes,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("Student created",
		zap.String("student_id", student.ID),
		zap.String("name", student.Name),
	)

	return student, nil
}

// GetByID получает ученика по ID
func (s *StudentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	return student, nil
}

// List получает всех учеников
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	return s.studentRepo.List(ctx)
}

// Update обновляет ученика
func (s *StudentService) Update(ctx context.Context, id string, input StudentInput) (*model.Student, error) {
	student := &model.Student{
		ID:       id,
		Name:     input.Name,
		Phone:    input.Phone,
		MemberID: input.MemberID,
		Notes:    input.Notes,
	}

	ok, err := s.studentRepo.Update(ctx, student)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return s.studentRepo.GetByID(ctx, id)
}

// Delete удаляет ученика. Ученик с запланированными уроками не удаляется
func (s *StudentService) Delete(ctx context.Context, id string) error {
	ok, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return ErrEntityReferenced
		}
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.logger.Info("Student deleted", zap.String("student_id", id))
	return nil
}

// ListUnavailableDates получает blackout-даты, опционально одного ученика
func (s *StudentService) ListUnavailableDates(ctx context.Context, studentID string) ([]*model.StudentUnavailableDate, error) {
	return s.unavailableRepo.List(ctx, studentID)
}

// GetUnavailableDate получает одну blackout-дату по ID
func (s *StudentService) GetUnavailableDate(ctx context.Context, id string) (*model.StudentUnavailableDate, error) {
	date, err := s.unavailableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, ErrNotFound
	}
	return date, nil
}

// UpdateUnavailableDate изменяет дату одной blackout-записи
func (s *StudentService) UpdateUnavailableDate(ctx context.Context, id, rawDate string) (*model.StudentUnavailableDate, error) {
	parsed, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return nil, ErrInvalidDatesPayload
	}

	date := &model.StudentUnavailableDate{ID: id, Date: parsed}
	ok, err := s.unavailableRepo.Update(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return s.unavailableRepo.GetByID(ctx, id)
}

// DeleteUnavailableDate удаляет одну blackout-запись
func (s *StudentService) DeleteUnavailableDate(ctx context.Context, id string) error {
	ok, err := s.unavailableRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ReplaceUnavailableDates атомарно заменяет весь набор blackout-дат
// ученика. Даты приходят строками YYYY-MM-DD; дубликаты схлопываются.
// Возвращает количество вставленных записей.
func (s *StudentService) ReplaceUnavailableDates(ctx context.Context, studentID string, rawDates []string) (int, error) {
	if studentID == "" {
		return 0, ErrMissingStudentID
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if student == nil {
		return 0, ErrNotFound
	}

	seen := make(map[string]struct{}, len(rawDates))
	dates := make([]time.Time, 0, len(rawDates))
	for _, raw := range rawDates {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return 0, ErrInvalidDatesPayload
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		dates = append(dates, parsed)
	}

	count, err := s.unavailableRepo.ReplaceForStudent(ctx, studentID, dates)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Unavailable dates replaced",
		zap.String("student_id", studentID),
		zap.Int("count", count),
	)

	return count, nil
}

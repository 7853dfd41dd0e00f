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

// Notifier уведомляет администратора о событиях расписания.
// Реализация может отсутствовать (nil) — тогда уведомления не шлются.
type Notifier interface {
	LessonBooked(ctx context.Context, lesson *model.Lesson)
	LessonCanceled(ctx context.Context, lesson *model.Lesson)
}

// LessonInput входные данные для создания/изменения урока
type LessonInput struct {
	CoachID   string
	StudentID string
	StartTime time.Time
	EndTime   time.Time
}

type LessonService struct {
	lessonRepo      *repository.LessonRepository
	coachRepo       *repository.CoachRepository
	studentRepo     *repository.StudentRepository
	unavailableRepo *repository.UnavailableDateRepository
	notifier        Notifier
	loc             *time.Location
	logger          *zap.Logger
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	coachRepo *repository.CoachRepository,
	studentRepo *repository.StudentRepository,
	unavailableRepo *repository.UnavailableDateRepository,
	notifier Notifier,
	loc *time.Location,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo:      lessonRepo,
		coachRepo:       coachRepo,
		studentRepo:     studentRepo,
		unavailableRepo: unavailableRepo,
		notifier:        notifier,
		loc:             loc,
		logger:          logger,
	}
}

// Create создаёт урок после проверки всех правил бронирования
func (s *LessonService) Create(ctx context.Context, input LessonInput) (*model.Lesson, error) {
	if err := s.validateAgainstStore(ctx, ProposedLesson{
		CoachID:   input.CoachID,
		StudentID: input.StudentID,
		Start:     input.StartTime,
		End:       input.EndTime,
	}); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ID:        uuid.New().String(),
		CoachID:   input.CoachID,
		StudentID: input.StudentID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		// EXCLUDE-констрейнт в БД поймал гонку, которую не видел снимок
		if base.IsExclusionViolation(err) {
			return nil, ErrScheduleConflict
		}
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	s.logger.Info("Lesson booked",
		zap.String("lesson_id", lesson.ID),
		zap.String("coach_id", lesson.CoachID),
		zap.String("student_id", lesson.StudentID),
		zap.Time("start_time", lesson.StartTime),
	)

	if s.notifier != nil {
		s.notifier.LessonBooked(ctx, lesson)
	}

	return lesson, nil
}

// GetByID получает урок по ID
func (s *LessonService) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrNotFound
	}
	return lesson, nil
}

// List получает все уроки; при year > 0 — только уроки указанного месяца
func (s *LessonService) List(ctx context.Context, year int, month time.Month) ([]*model.Lesson, error) {
	if year > 0 {
		from, to := MonthRange(year, month, s.loc)
		return s.lessonRepo.ListByRange(ctx, from, to)
	}
	return s.lessonRepo.List(ctx)
}

// Update изменяет урок, применяя те же правила бронирования
func (s *LessonService) Update(ctx context.Context, id string, input LessonInput) (*model.Lesson, error) {
	existing, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := s.validateAgainstStore(ctx, ProposedLesson{
		ID:        id,
		CoachID:   input.CoachID,
		StudentID: input.StudentID,
		Start:     input.StartTime,
		End:       input.EndTime,
	}); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ID:        id,
		CoachID:   input.CoachID,
		StudentID: input.StudentID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}

	ok, err := s.lessonRepo.Update(ctx, lesson)
	if err != nil {
		if base.IsExclusionViolation(err) {
			return nil, ErrScheduleConflict
		}
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	s.logger.Info("Lesson updated",
		zap.String("lesson_id", lesson.ID),
		zap.Time("start_time", lesson.StartTime),
	)

	return s.lessonRepo.GetByID(ctx, id)
}

// Delete удаляет урок
func (s *LessonService) Delete(ctx context.Context, id string) error {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrNotFound
	}

	ok, err := s.lessonRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	s.logger.Info("Lesson canceled", zap.String("lesson_id", id))

	if s.notifier != nil {
		s.notifier.LessonCanceled(ctx, lesson)
	}

	return nil
}

// UnassignedStudentsForMonth возвращает учеников без уроков в месяце
func (s *LessonService) UnassignedStudentsForMonth(ctx context.Context, year int, month time.Month) ([]*model.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	from, to := MonthRange(year, month, s.loc)
	lessons, err := s.lessonRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return UnassignedStudents(students, lessons), nil
}

// LessonCountsForMonth возвращает количество уроков месяца по тренерам и ученикам
func (s *LessonService) LessonCountsForMonth(ctx context.Context, year int, month time.Month) (map[string]int, map[string]int, error) {
	from, to := MonthRange(year, month, s.loc)
	lessons, err := s.lessonRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}

	coachCounts, studentCounts := CountsByEntity(lessons)
	return coachCounts, studentCounts, nil
}

// validateAgainstStore проверяет ссылки на тренера/ученика и прогоняет
// чистый валидатор над консистентным снимком текущих уроков. Снимок
// может устареть к моменту INSERT — финальным арбитром остаётся
// EXCLUDE-констрейнт в БД.
func (s *LessonService) validateAgainstStore(ctx context.Context, proposed ProposedLesson) error {
	coach, err := s.coachRepo.GetByID(ctx, proposed.CoachID)
	if err != nil {
		return err
	}
	if coach == nil {
		return fmt.Errorf("coach %s: %w", proposed.CoachID, ErrNotFound)
	}

	student, err := s.studentRepo.GetByID(ctx, proposed.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return fmt.Errorf("student %s: %w", proposed.StudentID, ErrNotFound)
	}

	existing, err := s.lessonRepo.ListByParticipants(ctx, proposed.CoachID, proposed.StudentID)
	if err != nil {
		return err
	}

	blackouts, err := s.unavailableRepo.List(ctx, proposed.StudentID)
	if err != nil {
		return err
	}

	return ValidateLesson(proposed, existing, blackouts, s.loc)
}

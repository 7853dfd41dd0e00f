package service

import (
	"time"

	"github.com/planbar/planbar-api/internal/model"
)

// MinLessonDuration минимальная длительность урока
const MinLessonDuration = 60 * time.Minute

// ProposedLesson урок, который клиент хочет создать или изменить.
// ID пустой при создании и заполнен при редактировании (для
// самоисключения из проверки конфликтов).
type ProposedLesson struct {
	ID        string
	CoachID   string
	StudentID string
	Start     time.Time
	End       time.Time
}

// ValidateLesson проверяет предлагаемый урок против уже существующих
// уроков и blackout-дат ученика. Чистая функция без побочных эффектов:
// работает только с переданными срезами, поэтому тестируется без БД.
//
// Проверки идут по порядку, возвращается первая нарушенная:
//  1. конец позже начала
//  2. длительность не меньше MinLessonDuration
//  3. пересечение [start, end) с уроком того же тренера или ученика
//  4. календарный день начала (в таймзоне loc) не входит в blackout-даты
func ValidateLesson(
	proposed ProposedLesson,
	existing []*model.Lesson,
	blackouts []*model.StudentUnavailableDate,
	loc *time.Location,
) error {
	if !proposed.End.After(proposed.Start) {
		return ErrInvalidInterval
	}

	if proposed.End.Sub(proposed.Start) < MinLessonDuration {
		return ErrDurationTooShort
	}

	for _, lesson := range existing {
		// При редактировании урок не конфликтует сам с собой
		if proposed.ID != "" && lesson.ID == proposed.ID {
			continue
		}

		sameCoach := lesson.CoachID == proposed.CoachID
		sameStudent := lesson.StudentID == proposed.StudentID
		if !sameCoach && !sameStudent {
			continue
		}

		// Полуоткрытые интервалы: смежные уроки не пересекаются
		if proposed.Start.Before(lesson.EndTime) && proposed.End.After(lesson.StartTime) {
			return ErrScheduleConflict
		}
	}

	if loc == nil {
		loc = time.Local
	}
	startYear, startMonth, startDay := proposed.Start.In(loc).Date()

	for _, blackout := range blackouts {
		if blackout.StudentID != proposed.StudentID {
			continue
		}
		year, month, day := blackout.Date.Date()
		if year == startYear && month == startMonth && day == startDay {
			return ErrStudentUnavailable
		}
	}

	return nil
}

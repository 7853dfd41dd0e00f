package service

import "errors"

// Ошибки валидации бронирования и запросов. Возвращаются как значения,
// а не как непрозрачные failure, чтобы хендлеры могли отдать клиенту
// конкретную причину отказа.
var (
	ErrInvalidInterval     = errors.New("end time must be after start time")
	ErrDurationTooShort    = errors.New("lesson must be at least 60 minutes")
	ErrScheduleConflict    = errors.New("coach or student already has a lesson in this time range")
	ErrStudentUnavailable  = errors.New("student is unavailable on this date")
	ErrNotFound            = errors.New("not found")
	ErrMissingStudentID    = errors.New("student_id is required")
	ErrInvalidDatesPayload = errors.New("dates must be a list of YYYY-MM-DD values")
	ErrRelationExists      = errors.New("relation already exists")
	ErrEntityReferenced    = errors.New("entity is referenced by existing lessons")
)

// IsValidationError сообщает, является ли ошибка отказом валидации,
// который клиент может исправить сам
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrDurationTooShort) ||
		errors.Is(err, ErrScheduleConflict) ||
		errors.Is(err, ErrStudentUnavailable) ||
		errors.Is(err, ErrMissingStudentID) ||
		errors.Is(err, ErrInvalidDatesPayload)
}

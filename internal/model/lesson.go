package model

import "time"

type Lesson struct {
	ID        string    `json:"id"`
	CoachID   string    `json:"coach_id"`
	StudentID string    `json:"student_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Coach   *Coach   `json:"coach,omitempty"`
	Student *Student `json:"student,omitempty"`
}

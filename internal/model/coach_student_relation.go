package model

import "time"

// CoachStudentRelation связь тренер-ученик (составной ключ, без собственного ID)
type CoachStudentRelation struct {
	CoachID   string    `json:"coach_id"`
	StudentID string    `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}

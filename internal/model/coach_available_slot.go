package model

import "time"

// CoachAvailableSlot окно доступности тренера. Записывается, но при
// создании уроков пока не проверяется (задел под будущий matching).
type CoachAvailableSlot struct {
	ID        string    `json:"id"`
	CoachID   string    `json:"coach_id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

// StudentUnavailableDate календарный день, в который ученика нельзя записывать.
// Date хранится как дата без времени (полночь UTC после скана из DATE-колонки).
type StudentUnavailableDate struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// DateString возвращает дату в формате YYYY-MM-DD
func (d *StudentUnavailableDate) DateString() string {
	return d.Date.Format("2006-01-02")
}

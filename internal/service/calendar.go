package service

import (
	"time"

	"github.com/planbar/planbar-api/internal/model"
)

// Чистые функции месячного окна календаря. Детерминированы и без
// скрытого состояния: выбранный месяц всегда приходит параметром.

// MonthRange возвращает границы месяца: первая миллисекунда первого дня
// и последняя миллисекунда последнего дня. Количество дней берётся из
// самого календаря, так что февраль високосного года считается верно.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// FilterByRange возвращает уроки, начинающиеся в [from, to] включительно
func FilterByRange(lessons []*model.Lesson, from, to time.Time) []*model.Lesson {
	var filtered []*model.Lesson
	for _, lesson := range lessons {
		if lesson.StartTime.Before(from) || lesson.StartTime.After(to) {
			continue
		}
		filtered = append(filtered, lesson)
	}
	return filtered
}

// UnassignedStudents возвращает учеников, у которых нет ни одного урока
// среди переданных (обычно — уроков выбранного месяца)
func UnassignedStudents(students []*model.Student, lessonsInRange []*model.Lesson) []*model.Student {
	assigned := make(map[string]struct{}, len(lessonsInRange))
	for _, lesson := range lessonsInRange {
		assigned[lesson.StudentID] = struct{}{}
	}

	var unassigned []*model.Student
	for _, student := range students {
		if _, ok := assigned[student.ID]; !ok {
			unassigned = append(unassigned, student)
		}
	}
	return unassigned
}

// CountsByEntity считает уроки по тренерам и ученикам: один урок даёт
// по единице каждому участнику
func CountsByEntity(lessonsInRange []*model.Lesson) (map[string]int, map[string]int) {
	coachCounts := make(map[string]int)
	studentCounts := make(map[string]int)
	for _, lesson := range lessonsInRange {
		coachCounts[lesson.CoachID]++
		studentCounts[lesson.StudentID]++
	}
	return coachCounts, studentCounts
}

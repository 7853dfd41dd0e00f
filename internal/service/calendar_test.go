package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/planbar/planbar-api/internal/model"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"leap february",
			2024, time.February,
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC),
		},
		{
			"regular february",
			2025, time.February,
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 28, 23, 59, 59, 999000000, time.UTC),
		},
		{
			"thirty day month",
			2025, time.June,
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 30, 23, 59, 59, 999000000, time.UTC),
		},
		{
			"december wraps the year",
			2025, time.December,
			time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 23, 59, 59, 999000000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthRange(tt.year, tt.month, time.UTC)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end: got %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestFilterByRange(t *testing.T) {
	from, to := MonthRange(2025, time.June, time.UTC)

	lessons := []*model.Lesson{
		{ID: "may", StartTime: time.Date(2025, 5, 31, 23, 59, 59, 999000000, time.UTC)},
		{ID: "first-instant", StartTime: from},
		{ID: "mid-month", StartTime: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)},
		{ID: "last-instant", StartTime: to},
		{ID: "july", StartTime: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
	}

	filtered := FilterByRange(lessons, from, to)

	var ids []string
	for _, lesson := range filtered {
		ids = append(ids, lesson.ID)
	}

	want := []string{"first-instant", "mid-month", "last-instant"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}
}

func TestUnassignedStudents(t *testing.T) {
	students := []*model.Student{
		{ID: "s1", Name: "Alice"},
		{ID: "s2", Name: "Bob"},
		{ID: "s3", Name: "Carol"},
	}
	lessons := []*model.Lesson{
		{ID: "l1", CoachID: "c1", StudentID: "s2"},
	}

	unassigned := UnassignedStudents(students, lessons)

	if len(unassigned) != 2 {
		t.Fatalf("got %d students, want 2", len(unassigned))
	}
	if unassigned[0].ID != "s1" || unassigned[1].ID != "s3" {
		t.Errorf("got %s, %s; want s1, s3", unassigned[0].ID, unassigned[1].ID)
	}
}

func TestUnassignedStudentsAllAssigned(t *testing.T) {
	students := []*model.Student{{ID: "s1"}}
	lessons := []*model.Lesson{{ID: "l1", StudentID: "s1"}}

	if got := UnassignedStudents(students, lessons); len(got) != 0 {
		t.Errorf("got %d students, want 0", len(got))
	}
}

func TestCountsByEntity(t *testing.T) {
	lessons := []*model.Lesson{
		{ID: "l1", CoachID: "c1", StudentID: "s1"},
		{ID: "l2", CoachID: "c1", StudentID: "s2"},
		{ID: "l3", CoachID: "c2", StudentID: "s1"},
	}

	coachCounts, studentCounts := CountsByEntity(lessons)

	if coachCounts["c1"] != 2 || coachCounts["c2"] != 1 {
		t.Errorf("coach counts: got %v", coachCounts)
	}
	if studentCounts["s1"] != 2 || studentCounts["s2"] != 1 {
		t.Errorf("student counts: got %v", studentCounts)
	}
}

func TestCalendarFunctionsAreDeterministic(t *testing.T) {
	lessons := []*model.Lesson{
		{ID: "l1", CoachID: "c1", StudentID: "s1", StartTime: time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)},
		{ID: "l2", CoachID: "c2", StudentID: "s2", StartTime: time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)},
	}
	from, to := MonthRange(2025, time.June, time.UTC)

	first := FilterByRange(lessons, from, to)
	second := FilterByRange(lessons, from, to)
	if !reflect.DeepEqual(first, second) {
		t.Error("FilterByRange is not deterministic")
	}

	c1, s1 := CountsByEntity(lessons)
	c2, s2 := CountsByEntity(lessons)
	if !reflect.DeepEqual(c1, c2) || !reflect.DeepEqual(s1, s2) {
		t.Error("CountsByEntity is not deterministic")
	}
}

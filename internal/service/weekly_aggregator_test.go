package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"class-timetable/internal/domain/schedule"
	"class-timetable/pkg/logger"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func TestWeeklyAggregator_MissingReferencesDegrade(t *testing.T) {
	lectures := newFakeLectureRepo(&schedule.Lecture{ID: "L1", LectureName: "Algorithms", Credit: 3})
	slots := newFakeTimeSlotRepo(&schedule.TimeSlot{ID: "T1", StartTime: "09:00", EndTime: "10:00", LectureNumber: "001"})
	agg := NewWeeklyAggregator(lectures, slots)

	week, err := agg.Aggregate(context.Background(), []*schedule.Enrollment{
		{LectureID: "L1", TimeSlotID: "T-gone", DayOfWeek: 2, Classroom: "A"},
		{LectureID: "L-gone", TimeSlotID: "T1", DayOfWeek: 2, Classroom: "B"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(week[2]) != 2 {
		t.Fatalf("Expected both entries to be kept, got %d", len(week[2]))
	}

	// resolved slot sorts before the unresolved one
	first, second := week[2][0], week[2][1]
	if first.LectureID != "L-gone" || second.LectureID != "L1" {
		t.Fatalf("Unexpected order: %s, %s", first.LectureID, second.LectureID)
	}
	if first.LectureName != "" || first.Credit != nil {
		t.Errorf("Expected lecture fields absent for missing lecture, got %+v", first)
	}
	if first.StartTime == nil || *first.StartTime != "09:00" {
		t.Errorf("Expected slot fields for resolved slot, got %+v", first)
	}
	if second.StartTime != nil || second.EndTime != nil || second.LectureNumber != nil {
		t.Errorf("Expected slot fields absent for missing slot, got %+v", second)
	}
	if second.Credit == nil || *second.Credit != 3 {
		t.Errorf("Expected credit 3, got %v", second.Credit)
	}
}

func TestWeeklyAggregator_OrderingAndMemo(t *testing.T) {
	lectures := newFakeLectureRepo(
		&schedule.Lecture{ID: "A"}, &schedule.Lecture{ID: "B"}, &schedule.Lecture{ID: "C"},
	)
	slots := newFakeTimeSlotRepo(&schedule.TimeSlot{ID: "T1", StartTime: "10:00"})
	agg := NewWeeklyAggregator(lectures, slots)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	week, err := agg.Aggregate(context.Background(), []*schedule.Enrollment{
		{LectureID: "C", TimeSlotID: "T1", DayOfWeek: 0, CreatedAt: base},
		{LectureID: "B", TimeSlotID: "T1", DayOfWeek: 3, CreatedAt: base.Add(time.Minute)},
		{LectureID: "A", TimeSlotID: "T1", DayOfWeek: 3, CreatedAt: base.Add(time.Minute)},
		{LectureID: "C", TimeSlotID: "T1", DayOfWeek: 3, CreatedAt: base},
		{LectureID: "A", TimeSlotID: "T1", DayOfWeek: 9},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if week.Count() != 4 {
		t.Fatalf("Expected out-of-range day to be skipped, got %d entries", week.Count())
	}

	got := []string{week[3][0].LectureID, week[3][1].LectureID, week[3][2].LectureID}
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
	if slots.gets != 1 {
		t.Errorf("Expected one slot lookup per call, got %d", slots.gets)
	}
	if lectures.gets != 3 {
		t.Errorf("Expected one lookup per distinct lecture, got %d", lectures.gets)
	}
}

func TestWeeklyAggregator_EmptyInput(t *testing.T) {
	agg := NewWeeklyAggregator(newFakeLectureRepo(), newFakeTimeSlotRepo())

	week, err := agg.Aggregate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for d, entries := range week {
		if entries == nil || len(entries) != 0 {
			t.Errorf("Expected empty non-nil bucket for day %d", d)
		}
	}
}

func TestWeeklyAggregator_LookupFailureAborts(t *testing.T) {
	slots := newFakeTimeSlotRepo()
	slots.getErr = errBackend
	agg := NewWeeklyAggregator(newFakeLectureRepo(&schedule.Lecture{ID: "L1"}), slots)

	_, err := agg.Aggregate(context.Background(), []*schedule.Enrollment{{LectureID: "L1", TimeSlotID: "T1", DayOfWeek: 1}})
	if !errors.Is(err, schedule.ErrStorageFailure) {
		t.Fatalf("Expected storage failure, got %v", err)
	}
}

func TestWeeklyAggregator_InvalidDayIsLogged(t *testing.T) {
	hook := logtest.NewLocal(logger.GetLogger())
	defer hook.Reset()

	agg := NewWeeklyAggregator(newFakeLectureRepo(&schedule.Lecture{ID: "L1"}), newFakeTimeSlotRepo())
	week, err := agg.Aggregate(context.Background(), []*schedule.Enrollment{
		{ID: "E-bad", UserID: "u1", LectureID: "L1", TimeSlotID: "T1", DayOfWeek: 9},
		{ID: "E-ok", UserID: "u1", LectureID: "L1", TimeSlotID: "T1", DayOfWeek: 0},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if week.Count() != 1 {
		t.Errorf("Expected 1 entry, got %d", week.Count())
	}

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["enrollment_id"] == "E-bad" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a warning naming enrollment E-bad")
	}
}

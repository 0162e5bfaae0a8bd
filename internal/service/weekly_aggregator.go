package service

import (
	"context"
	"sort"

	"class-timetable/internal/domain/schedule"
	"class-timetable/pkg/logger"

	"github.com/sirupsen/logrus"
)

// WeeklyAggregator joins enrollments with their lectures and time slots and
// buckets them by day of the week.
type WeeklyAggregator struct {
	lectures  schedule.LectureDirectory
	timeSlots schedule.TimeSlotDirectory
}

func NewWeeklyAggregator(lectures schedule.LectureDirectory, timeSlots schedule.TimeSlotDirectory) *WeeklyAggregator {
	return &WeeklyAggregator{lectures: lectures, timeSlots: timeSlots}
}

type aggregatedEntry struct {
	entry     schedule.ScheduleEntry
	createdAt int64
}

// Aggregate builds the weekly view. A lecture or slot that no longer resolves
// leaves its fields out of the entry; lookup failures abort the whole call.
// Enrollments with a day outside [0,6] have no bucket; they are logged and left out.
func (a *WeeklyAggregator) Aggregate(ctx context.Context, enrollments []*schedule.Enrollment) (schedule.WeeklySchedule, error) {
	week := schedule.NewWeeklySchedule()

	lectures := make(map[string]*schedule.Lecture)
	slots := make(map[string]*schedule.TimeSlot)
	var buckets [schedule.DaysInWeek][]aggregatedEntry

	for _, e := range enrollments {
		if e == nil {
			continue
		}
		if !schedule.ValidDayOfWeek(e.DayOfWeek) {
			logger.WithFields(logrus.Fields{
				"enrollment_id": e.ID,
				"user_id":       e.UserID,
				"lecture_id":    e.LectureID,
				"day_of_week":   e.DayOfWeek,
			}).Warn("Enrollment has no valid day of week, leaving it out of the weekly view")
			continue
		}

		lecture, ok := lectures[e.LectureID]
		if !ok {
			var err error
			lecture, err = a.lectures.GetByID(ctx, e.LectureID)
			if err != nil {
				return week, schedule.StorageError("resolve lecture", err)
			}
			lectures[e.LectureID] = lecture
		}

		slot, ok := slots[e.TimeSlotID]
		if !ok {
			var err error
			slot, err = a.timeSlots.GetByID(ctx, e.TimeSlotID)
			if err != nil {
				return week, schedule.StorageError("resolve time slot", err)
			}
			slots[e.TimeSlotID] = slot
		}

		buckets[e.DayOfWeek] = append(buckets[e.DayOfWeek], aggregatedEntry{
			entry:     buildEntry(e, lecture, slot),
			createdAt: e.CreatedAt.UnixNano(),
		})
	}

	for d := range buckets {
		day := buckets[d]
		sort.SliceStable(day, func(i, j int) bool {
			return entryLess(day[i], day[j])
		})
		for _, ae := range day {
			week[d] = append(week[d], ae.entry)
		}
	}

	return week, nil
}

func buildEntry(e *schedule.Enrollment, lecture *schedule.Lecture, slot *schedule.TimeSlot) schedule.ScheduleEntry {
	entry := schedule.ScheduleEntry{
		LectureID: e.LectureID,
		Classroom: e.Classroom,
	}
	if lecture != nil {
		credit := lecture.Credit
		entry.LectureName = lecture.LectureName
		entry.Professor = lecture.Professor
		entry.Credit = &credit
		entry.Department = lecture.Department
	}
	if slot != nil {
		start, end, number := slot.StartTime, slot.EndTime, slot.LectureNumber
		entry.StartTime = &start
		entry.EndTime = &end
		entry.LectureNumber = &number
	}
	return entry
}

// entryLess orders by start time with unresolved slots last, then creation
// time, then lecture id.
func entryLess(a, b aggregatedEntry) bool {
	as, bs := a.entry.StartTime, b.entry.StartTime
	switch {
	case as != nil && bs == nil:
		return true
	case as == nil && bs != nil:
		return false
	case as != nil && bs != nil && *as != *bs:
		return *as < *bs
	}
	if a.createdAt != b.createdAt {
		return a.createdAt < b.createdAt
	}
	return a.entry.LectureID < b.entry.LectureID
}

package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// WeeklySchedule buckets a user's enrollments by day of the week. Every day is
// present in the JSON form, empty days as [].
type WeeklySchedule [DaysInWeek][]ScheduleEntry

// NewWeeklySchedule returns a schedule with all seven days initialized empty.
func NewWeeklySchedule() WeeklySchedule {
	var w WeeklySchedule
	for d := range w {
		w[d] = []ScheduleEntry{}
	}
	return w
}

// Count returns the number of entries across the week.
func (w WeeklySchedule) Count() int {
	n := 0
	for _, day := range w {
		n += len(day)
	}
	return n
}

func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string][]ScheduleEntry, DaysInWeek)
	for d, entries := range w {
		if entries == nil {
			entries = []ScheduleEntry{}
		}
		out[strconv.Itoa(d)] = entries
	}
	return json.Marshal(out)
}

func (w *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var in map[string][]ScheduleEntry
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*w = NewWeeklySchedule()
	for key, entries := range in {
		d, err := strconv.Atoi(key)
		if err != nil || !ValidDayOfWeek(d) {
			return fmt.Errorf("invalid day key %q in weekly schedule", key)
		}
		if entries != nil {
			w[d] = entries
		}
	}
	return nil
}

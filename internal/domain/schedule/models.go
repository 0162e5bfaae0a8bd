package schedule

import (
	"strings"
	"time"
)

// DaysInWeek is the number of day buckets in a weekly schedule; day 0 is Sunday.
const DaysInWeek = 7

// Lecture is a catalogue entry. The enrollment core only reads it.
type Lecture struct {
	ID          string    `json:"id" gorm:"column:id;primaryKey" db:"id"`
	LectureName string    `json:"lectureName" gorm:"column:lecture_name;not null" db:"lecture_name"`
	Professor   string    `json:"professor" gorm:"column:professor;not null" db:"professor"`
	Credit      float64   `json:"credit" gorm:"column:credit;not null" db:"credit"`
	Department  string    `json:"department" gorm:"column:department;not null" db:"department"`
	CreatedBy   string    `json:"createdBy,omitempty" gorm:"column:created_by" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (Lecture) TableName() string { return "lectures" }

// TimeSlot is a recurring period of a lecture section. ID is the externally
// assigned lecture time identifier, shared by every enrollment in that slot.
type TimeSlot struct {
	ID            string    `json:"lectureTimeId" gorm:"column:id;primaryKey" db:"id"`
	LectureID     string    `json:"lectureId" gorm:"column:lecture_id;not null" db:"lecture_id"`
	StartTime     string    `json:"startTime" gorm:"column:start_time;not null" db:"start_time"`
	EndTime       string    `json:"endTime" gorm:"column:end_time;not null" db:"end_time"`
	LectureNumber string    `json:"lectureNumber" gorm:"column:lecture_number" db:"lecture_number"`
	CreatedAt     time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (TimeSlot) TableName() string { return "time_slots" }

// Enrollment places one lecture of a user at a time slot on a day of the week.
// Records are never updated in place; moving a lecture is remove + add.
type Enrollment struct {
	ID         string    `json:"id" gorm:"column:id;primaryKey" db:"id"`
	UserID     string    `json:"userId" gorm:"column:user_id;not null" db:"user_id"`
	LectureID  string    `json:"lectureId" gorm:"column:lecture_id;not null" db:"lecture_id"`
	TimeSlotID string    `json:"timeSlotId" gorm:"column:time_slot_id;not null" db:"time_slot_id"`
	DayOfWeek  int       `json:"dayOfWeek" gorm:"column:day_of_week;not null" db:"day_of_week"`
	Classroom  string    `json:"classroom" gorm:"column:classroom;not null;default:''" db:"classroom"`
	CreatedAt  time.Time `json:"createdAt" gorm:"column:created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"column:updated_at" db:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollments" }

// LectureComment is a student's evaluation of a lecture.
type LectureComment struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey" db:"id"`
	LectureID string    `json:"lectureId" gorm:"column:lecture_id;not null" db:"lecture_id"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;not null" db:"author_id"`
	Content   string    `json:"evaluationContent" gorm:"column:content;not null" db:"content"`
	Rating    int       `json:"rating" gorm:"column:rating;not null" db:"rating"`
	Semester  string    `json:"semester" gorm:"column:semester;not null" db:"semester"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at" db:"updated_at"`
}

func (LectureComment) TableName() string { return "lecture_comments" }

// ValidDayOfWeek reports whether day is in [0,6].
func ValidDayOfWeek(day int) bool {
	return day >= 0 && day < DaysInWeek
}

// AddLectureInput is the payload of an add operation. DayOfWeek is a pointer
// so that an omitted day can be told apart from Sunday.
type AddLectureInput struct {
	LectureID  string
	TimeSlotID string
	DayOfWeek  *int
	Classroom  string
}

// Normalize trims identifiers in place.
func (in *AddLectureInput) Normalize() {
	in.LectureID = strings.TrimSpace(in.LectureID)
	in.TimeSlotID = strings.TrimSpace(in.TimeSlotID)
	in.Classroom = strings.TrimSpace(in.Classroom)
}

// ScheduleEntry is one row of the weekly view: an enrollment joined with its
// lecture and time slot. Fields of a reference that did not resolve are left out.
type ScheduleEntry struct {
	LectureID     string   `json:"lectureId"`
	LectureName   string   `json:"lectureName,omitempty"`
	Professor     string   `json:"professor,omitempty"`
	Credit        *float64 `json:"credit,omitempty"`
	Department    string   `json:"department,omitempty"`
	StartTime     *string  `json:"startTime,omitempty"`
	EndTime       *string  `json:"endTime,omitempty"`
	LectureNumber *string  `json:"lectureNumber,omitempty"`
	Classroom     string   `json:"classroom"`
}

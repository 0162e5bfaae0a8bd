package handlers

import (
	"net/http"
	"strings"

	"class-timetable/internal/api/middleware"
	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler serves the caller's weekly timetable
type ScheduleHandler struct {
	scheduleService interfaces.ScheduleService
}

func NewScheduleHandler(scheduleService interfaces.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// AddLectureRequest is the body of POST /schedule/:lectureId
type AddLectureRequest struct {
	TimeSlotID string `json:"timeSlotId" validate:"required"`
	DayOfWeek  *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	Classroom  string `json:"classroom" validate:"max=100"`
}

// GetSchedule handles GET /schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	week, err := h.scheduleService.ListLectures(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    week,
	})
}

// GetLecture handles GET /schedule/:lectureId and GET /lectures/:id
func (h *ScheduleHandler) GetLecture(c *gin.Context) {
	lectureID := strings.TrimSpace(lectureParam(c))
	if lectureID == "" {
		badRequest(c, "lectureId is required", nil)
		return
	}

	lecture, err := h.scheduleService.GetLecture(c.Request.Context(), lectureID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lecture,
	})
}

// AddLecture handles POST /schedule/:lectureId
func (h *ScheduleHandler) AddLecture(c *gin.Context) {
	var req AddLectureRequest

	// Bind JSON request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	// Validate request
	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	enrollment, err := h.scheduleService.AddLecture(c.Request.Context(), middleware.CurrentUserID(c), schedule.AddLectureInput{
		LectureID:  lectureParam(c),
		TimeSlotID: req.TimeSlotID,
		DayOfWeek:  req.DayOfWeek,
		Classroom:  req.Classroom,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Lecture added to schedule",
		Data:    enrollment,
	})
}

// RemoveLecture handles DELETE /schedule/:lectureId
func (h *ScheduleHandler) RemoveLecture(c *gin.Context) {
	lectureID := strings.TrimSpace(lectureParam(c))

	if err := h.scheduleService.RemoveLecture(c.Request.Context(), middleware.CurrentUserID(c), lectureID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Lecture removed from schedule",
		Data:    gin.H{"lectureId": lectureID},
	})
}

func lectureParam(c *gin.Context) string {
	if id := c.Param("lectureId"); id != "" {
		return id
	}
	return c.Param("id")
}

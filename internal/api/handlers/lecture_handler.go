package handlers

import (
	"net/http"

	"class-timetable/internal/api/middleware"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
)

// LectureHandler manages the lecture catalogue
type LectureHandler struct {
	catalogService interfaces.CatalogService
}

func NewLectureHandler(catalogService interfaces.CatalogService) *LectureHandler {
	return &LectureHandler{
		catalogService: catalogService,
	}
}

// CreateLecture handles POST /lectures
func (h *LectureHandler) CreateLecture(c *gin.Context) {
	var req interfaces.CreateLectureRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	lecture, err := h.catalogService.CreateLecture(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Lecture created successfully",
		Data:    lecture,
	})
}

// ListLectures handles GET /lectures
func (h *LectureHandler) ListLectures(c *gin.Context) {
	limit, offset := pagination(c)

	lectures, err := h.catalogService.ListLectures(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lectures,
	})
}

// AddTimeSlot handles POST /lectures/:id/times
func (h *LectureHandler) AddTimeSlot(c *gin.Context) {
	var req interfaces.CreateTimeSlotRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	slot, err := h.catalogService.AddTimeSlot(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Time slot added successfully",
		Data:    slot,
	})
}

// ListTimeSlots handles GET /lectures/:id/times
func (h *LectureHandler) ListTimeSlots(c *gin.Context) {
	slots, err := h.catalogService.ListTimeSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    slots,
	})
}

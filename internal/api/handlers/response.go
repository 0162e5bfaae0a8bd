package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
	"class-timetable/pkg/logger"

	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success         bool        `json:"success"`
	Message         string      `json:"message,omitempty"`
	Data            interface{} `json:"data,omitempty"`
	Errors          interface{} `json:"errors,omitempty"`
	ConflictLecture string      `json:"conflictLecture,omitempty"`
}

// respondError maps a service error to a status code. Unknown errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var conflict *schedule.TimeConflictError

	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, APIResponse{
			Success:         false,
			Message:         schedule.ErrTimeConflict.Error(),
			ConflictLecture: conflict.ConflictLectureID,
		})
	case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, user.ErrCannotFriendSelf):
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	case errors.Is(err, schedule.ErrUnauthenticated), errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: err.Error()})
	case errors.Is(err, user.ErrForbidden):
		c.JSON(http.StatusForbidden, APIResponse{Success: false, Message: err.Error()})
	case errors.Is(err, schedule.ErrNotFound), errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrNotFriends):
		c.JSON(http.StatusNotFound, APIResponse{Success: false, Message: err.Error()})
	case errors.Is(err, schedule.ErrConflict), errors.Is(err, user.ErrUserNameTaken), errors.Is(err, user.ErrAlreadyFriends):
		c.JSON(http.StatusConflict, APIResponse{Success: false, Message: err.Error()})
	default:
		logger.Error("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, APIResponse{Success: false, Message: "Internal server error"})
	}
}

func badRequest(c *gin.Context, message string, errs interface{}) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// pagination parses limit and offset query parameters
func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

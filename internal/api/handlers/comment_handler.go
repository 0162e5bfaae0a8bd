package handlers

import (
	"net/http"

	"class-timetable/internal/api/middleware"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves lecture evaluations
type CommentHandler struct {
	commentService interfaces.CommentService
}

func NewCommentHandler(commentService interfaces.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// AddComment handles POST /lectures/:id/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req interfaces.CreateCommentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Comment added successfully",
		Data:    comment,
	})
}

// ListComments handles GET /lectures/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	limit, offset := pagination(c)

	comments, err := h.commentService.ListComments(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    comments,
	})
}

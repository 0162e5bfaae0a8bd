package handlers

import (
	"net/http"

	"class-timetable/internal/domain/user"
	interfaces "class-timetable/internal/interfaces/service"
	"class-timetable/pkg/validator"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService interfaces.AuthService
}

func NewAuthHandler(authService interfaces.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	created, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    created,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		badRequest(c, "Validation failed", validator.FormatValidationError(err))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    token,
	})
}

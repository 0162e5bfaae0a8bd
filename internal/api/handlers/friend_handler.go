package handlers

import (
	"net/http"

	"class-timetable/internal/api/middleware"
	"class-timetable/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// FriendHandler manages the caller's friend list
type FriendHandler struct {
	friendService user.FriendService
}

func NewFriendHandler(friendService user.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
	}
}

// ListFriends handles GET /friends
func (h *FriendHandler) ListFriends(c *gin.Context) {
	friends, err := h.friendService.ListFriends(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := APIResponse{
		Success: true,
		Data:    gin.H{"count": len(friends), "items": friends},
	}
	if len(friends) == 0 {
		resp.Message = "No friends added yet"
	}
	c.JSON(http.StatusOK, resp)
}

// SearchUser handles GET /friends/search/:userName
func (h *FriendHandler) SearchUser(c *gin.Context) {
	found, err := h.friendService.SearchUser(c.Request.Context(), c.Param("userName"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    found,
	})
}

// AddFriend handles POST /friends/me/:friendName
func (h *FriendHandler) AddFriend(c *gin.Context) {
	friend, err := h.friendService.AddFriend(c.Request.Context(), middleware.CurrentUserID(c), c.Param("friendName"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Friend added",
		Data:    friend,
	})
}

// RemoveFriend handles DELETE /friends/me/:friendName
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	name := c.Param("friendName")
	if err := h.friendService.RemoveFriend(c.Request.Context(), middleware.CurrentUserID(c), name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Friend removed",
		Data:    gin.H{"friendName": name},
	})
}

package user

import (
	"errors"
	"time"
)

var (
	ErrCannotFriendSelf = errors.New("cannot add yourself as a friend")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrNotFriends       = errors.New("not friends")
)

// Friend is one direction of a friend relation: UserID lists FriendID.
type Friend struct {
	UserID    string    `json:"userId" gorm:"column:user_id;primaryKey" db:"user_id"`
	FriendID  string    `json:"friendId" gorm:"column:friend_id;primaryKey" db:"friend_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at" db:"created_at"`
}

func (Friend) TableName() string { return "friends" }

// NewFriend creates a relation stamped with the current time
func NewFriend(userID, friendID string) *Friend {
	return &Friend{
		UserID:    userID,
		FriendID:  friendID,
		CreatedAt: time.Now().UTC(),
	}
}

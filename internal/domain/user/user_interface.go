package user

import "context"

// UserRepository defines the interface for user data access.
// Lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, error)
	Update(ctx context.Context, user *User) error
	// Delete removes the user together with their enrollments, friend
	// relations in both directions and lecture comments. It reports whether
	// the user row existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// FriendRepository stores directed friend relations.
type FriendRepository interface {
	// Add fails with ErrAlreadyFriends when the relation exists.
	Add(ctx context.Context, friend *Friend) error
	Remove(ctx context.Context, userID, friendID string) (int64, error)
	// ListFriends returns the users userID has added, oldest relation first.
	ListFriends(ctx context.Context, userID string) ([]*User, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*User, error)
	Authenticate(ctx context.Context, userName, password string) (*User, error)
	// UpdateUser and DeleteUser act on id only when callerID is the same user.
	UpdateUser(ctx context.Context, callerID, id string, req *UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, callerID, id string) error
}

// FriendService manages the friend list of the authenticated caller. Friends
// are addressed by user name.
type FriendService interface {
	ListFriends(ctx context.Context, userID string) ([]*User, error)
	SearchUser(ctx context.Context, userName string) (*User, error)
	AddFriend(ctx context.Context, userID, friendName string) (*User, error)
	RemoveFriend(ctx context.Context, userID, friendName string) error
}
